// Package worker backfills audio features for stored draft tracks.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

const jobTimeout = 30 * time.Second

// Job represents a background task for track processing.
type Job = ports.BackfillJob

// Pool manages background workers for async jobs.
type Pool struct {
	catalog ports.CatalogProvider
	repo    ports.PlaylistRepository
	log     *zap.Logger
	workers int
	jobs    chan Job
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

var _ ports.BackfillQueue = (*Pool)(nil)

// NewPool creates a worker pool with the given worker count and queue size.
func NewPool(catalog ports.CatalogProvider, repo ports.PlaylistRepository, workers int, queueSize int, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{
		catalog: catalog,
		repo:    repo,
		log:     log.Named("worker"),
		workers: workers,
		jobs:    make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
	p.log.Info("worker pool started", zap.Int("workers", p.workers), zap.Int("queue_size", cap(p.jobs)))
}

// Stop closes the queue and waits for queued jobs to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit queues a job without blocking. It returns false when the queue is
// full or the pool is stopped.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.log.Warn("pool stopped, dropping job", zap.String("track_id", job.TrackID))
		return false
	}

	select {
	case p.jobs <- job:
		return true
	default:
		p.log.Warn("queue full, dropping job", zap.String("track_id", job.TrackID))
		return false
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	features, source := p.resolveFeatures(ctx, job)
	if err := p.repo.UpdateTrackFeatures(ctx, job.TrackID, features); err != nil {
		p.log.Warn("failed to update track features", zap.String("track_id", job.TrackID), zap.Error(err))
		return
	}
	p.log.Info("track features updated",
		zap.String("track_id", job.TrackID),
		zap.String("source", source),
		zap.Float64("energy", features.Energy))
}

// resolveFeatures prefers the provider's analysis, then preview loudness
// layered on deterministic features.
func (p *Pool) resolveFeatures(ctx context.Context, job Job) (domain.AudioFeatures, string) {
	raw, err := p.catalog.AudioFeatures(ctx, job.TrackID)
	if err == nil {
		return raw.Features(), "provider"
	}
	p.log.Debug("provider features unavailable", zap.String("track_id", job.TrackID), zap.Error(err))

	features := deterministicFeatures(job.TrackID)
	if job.PreviewURL == "" {
		return features, "deterministic"
	}

	energy, err := AnalyzePreviewFunc(ctx, job.PreviewURL)
	if err != nil {
		p.log.Warn("preview analysis failed", zap.String("track_id", job.TrackID), zap.Error(err))
		return features, "deterministic"
	}
	features.Energy = energy
	return features, "preview"
}
