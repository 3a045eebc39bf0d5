package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

// DraftTrackInput identifies a track by catalog id or by title and artist.
type DraftTrackInput struct {
	TrackID string
	Title   string
	Artist  string
}

// DraftAnalysis summarizes a draft's sound.
type DraftAnalysis struct {
	Features    domain.AudioFeatures `json:"features"`
	ClosestMood string               `json:"closest_mood"`
}

// CreateDraft stores a new, empty draft playlist.
func (o *Orchestrator) CreateDraft(ctx context.Context, name, mood string) (domain.Playlist, error) {
	pl, err := domain.NewPlaylist(o.newID(), name, mood)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: create draft: %w", err)
	}
	pl.CreatedAt = o.now().UTC()

	if err := o.repo.Save(ctx, *pl); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to save playlist: %w", err)
	}
	return *pl, nil
}

// ListDrafts returns every stored draft.
func (o *Orchestrator) ListDrafts(ctx context.Context) ([]domain.PlaylistSummary, error) {
	drafts, err := o.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list drafts: %w", err)
	}
	if drafts == nil {
		drafts = []domain.PlaylistSummary{}
	}
	return drafts, nil
}

// GetDraft loads one draft with its tracks.
func (o *Orchestrator) GetDraft(ctx context.Context, id string) (domain.Playlist, error) {
	pl, err := o.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}
	return pl, nil
}

// AddDraftTrack resolves a track at the provider, adds it to the draft and
// saves it. A feature backfill job is queued for the new track.
func (o *Orchestrator) AddDraftTrack(ctx context.Context, draftID string, in DraftTrackInput) (domain.Playlist, error) {
	// 1. Load playlist from local repository
	pl, err := o.repo.GetByID(ctx, draftID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}

	// 2. Fetch track metadata from the provider
	track, err := o.resolveTrack(ctx, in)
	if err != nil {
		return domain.Playlist{}, err
	}

	// 3. Mutate the playlist
	if err := pl.AddTrack(track); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: domain rule violation: %w", err)
	}

	// 4. Persist the updated playlist
	if err := o.repo.Save(ctx, pl); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to save playlist: %w", err)
	}

	o.queueBackfill(track)
	return pl, nil
}

func (o *Orchestrator) resolveTrack(ctx context.Context, in DraftTrackInput) (domain.Track, error) {
	switch {
	case strings.TrimSpace(in.TrackID) != "":
		raw, err := o.spotify.Track(ctx, strings.TrimSpace(in.TrackID))
		if err != nil {
			return domain.Track{}, fmt.Errorf("service: failed to fetch track: %w", err)
		}
		return raw.ToTrack(), nil
	case strings.TrimSpace(in.Title) != "" && strings.TrimSpace(in.Artist) != "":
		track, err := o.spotify.MatchTrack(ctx, in.Title, in.Artist)
		if err != nil {
			return domain.Track{}, fmt.Errorf("service: failed to match track: %w", err)
		}
		return track, nil
	default:
		return domain.Track{}, fmt.Errorf("service: track_id or title and artist required: %w", domain.ErrValidation)
	}
}

func (o *Orchestrator) queueBackfill(track domain.Track) {
	if o.backfill == nil {
		return
	}
	if !o.backfill.Submit(ports.BackfillJob{TrackID: track.ID, PreviewURL: track.PreviewURL}) {
		o.log.Warn("backfill queue full", zap.String("track_id", track.ID))
	}
}

// RemoveDraftTrack drops a track from a draft.
func (o *Orchestrator) RemoveDraftTrack(ctx context.Context, draftID, trackID string) (domain.Playlist, error) {
	pl, err := o.repo.GetByID(ctx, draftID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}
	if err := pl.RemoveTrack(trackID); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: remove track %s: %w", trackID, err)
	}
	if err := o.repo.Save(ctx, pl); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to save playlist: %w", err)
	}
	return pl, nil
}

// AnalyzeDraft averages a draft's features and names the nearest mood.
func (o *Orchestrator) AnalyzeDraft(ctx context.Context, draftID string) (DraftAnalysis, error) {
	pl, err := o.repo.GetByID(ctx, draftID)
	if err != nil {
		return DraftAnalysis{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}
	features := pl.Analyze()
	return DraftAnalysis{Features: features, ClosestMood: domain.ClosestMood(features)}, nil
}

// PublishDraft creates a provider playlist from a draft.
func (o *Orchestrator) PublishDraft(ctx context.Context, draftID, token, description string, public bool) (PublishResult, error) {
	pl, err := o.repo.GetByID(ctx, draftID)
	if err != nil {
		return PublishResult{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}
	return o.CreatePlaylist(ctx, PublishRequest{
		AccessToken: token,
		Name:        pl.Name,
		Description: description,
		TrackURIs:   pl.TrackURIs(),
		Public:      public,
	})
}
