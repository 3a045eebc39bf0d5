// Package services holds the use cases behind the HTTP surface.
package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

// Limits applied to caller supplied page sizes.
const (
	MaxSearchLimit      = 50
	MaxGenerateLimit    = 100
	DefaultSearchLimit  = 20
	DefaultGenerateSize = 20
	DefaultSimilarLimit = 10
)

// Orchestrator coordinates the provider, the draft repository and the mood
// classifiers.
type Orchestrator struct {
	spotify    ports.SpotifyProvider
	repo       ports.PlaylistRepository
	classifier ports.MoodClassifier
	backfill   ports.BackfillQueue
	log        *zap.Logger
	now        func() time.Time
	newID      func() string
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClassifier sets the model-backed classifier tried before keywords.
func WithClassifier(c ports.MoodClassifier) Option {
	return func(o *Orchestrator) { o.classifier = c }
}

// WithBackfill sets the queue that receives feature backfill jobs.
func WithBackfill(q ports.BackfillQueue) Option {
	return func(o *Orchestrator) { o.backfill = q }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l.Named("service")
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator overrides draft id generation.
func WithIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) { o.newID = gen }
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(spotify ports.SpotifyProvider, repo ports.PlaylistRepository, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		spotify: spotify,
		repo:    repo,
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
