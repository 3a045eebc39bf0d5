package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// PlayInfo lists the ways a client can open a track.
type PlayInfo struct {
	SpotifyWeb string  `json:"spotify_web"`
	SpotifyApp string  `json:"spotify_app"`
	PreviewURL *string `json:"preview_url"`
	TrackName  string  `json:"track_name"`
	ArtistName string  `json:"artist_name"`
}

// SimilarTracks is the result of a seed-track recommendation.
type SimilarTracks struct {
	Tracks        []domain.RawTrack       `json:"tracks"`
	SeedTrack     domain.RawTrack         `json:"seed_track"`
	AudioFeatures domain.RawAudioFeatures `json:"audio_features"`
}

// Search relays a catalog search. Track results are enhanced in place.
func (o *Orchestrator) Search(ctx context.Context, query, searchType string, limit int) (map[string]any, error) {
	if searchType == "" {
		searchType = "track"
	}
	body, err := o.spotify.Search(ctx, query, searchType, clamp(limit, 1, MaxSearchLimit))
	if err != nil {
		return nil, fmt.Errorf("service: search: %w", err)
	}
	if searchType == "track" {
		enhanceSearchItems(body)
	}
	return body, nil
}

func enhanceSearchItems(body map[string]any) {
	tracks, ok := body["tracks"].(map[string]any)
	if !ok {
		return
	}
	items, _ := tracks["items"].([]any)
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			domain.RawTrack(m).Enhance()
		}
	}
}

// Genres returns the provider's genre seeds. When the provider cannot answer
// the static list is returned and fallback is true.
func (o *Orchestrator) Genres(ctx context.Context) (genres []string, fallback bool) {
	genres, err := o.spotify.GenreSeeds(ctx)
	if err != nil || len(genres) == 0 {
		o.log.Warn("genre seeds unavailable, using static list", zap.Error(err))
		return domain.FallbackGenres(), true
	}
	return genres, false
}

// Ready checks that the provider answers an application-token search.
func (o *Orchestrator) Ready(ctx context.Context) error {
	if _, err := o.spotify.SearchTracks(ctx, "test", 1); err != nil {
		return fmt.Errorf("service: provider check: %w", err)
	}
	return nil
}

// Track returns one enhanced catalog track.
func (o *Orchestrator) Track(ctx context.Context, id string) (domain.RawTrack, error) {
	track, err := o.spotify.Track(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: get track: %w", err)
	}
	return track.Enhance(), nil
}

// PlayURL returns the links for opening a track.
func (o *Orchestrator) PlayURL(ctx context.Context, id string) (PlayInfo, error) {
	track, err := o.spotify.Track(ctx, id)
	if err != nil {
		return PlayInfo{}, fmt.Errorf("service: play url: %w", err)
	}
	urls := track.PlayURLs()
	return PlayInfo{
		SpotifyWeb: urls.SpotifyWeb,
		SpotifyApp: urls.SpotifyApp,
		PreviewURL: urls.PreviewURL,
		TrackName:  track.Name(),
		ArtistName: track.ArtistNames(),
	}, nil
}

// Similar recommends tracks that sound like the seed. If recommendations
// fail or come back empty, the seed artist's top tracks are used instead.
// The seed track and its audio features are returned as the provider sent them.
func (o *Orchestrator) Similar(ctx context.Context, trackID string, limit int) (SimilarTracks, error) {
	limit = clamp(limit, 1, MaxGenerateLimit)

	rawFeatures, err := o.spotify.AudioFeatures(ctx, trackID)
	if err != nil {
		return SimilarTracks{}, fmt.Errorf("service: similar tracks: %w", err)
	}

	seed, err := o.spotify.Track(ctx, trackID)
	if err != nil {
		return SimilarTracks{}, fmt.Errorf("service: similar tracks: %w", err)
	}

	req := domain.RecommendationRequest{
		SeedTracks: []string{trackID},
		Targets:    domain.TargetsFromFeatures(rawFeatures.Features()),
		Limit:      limit,
	}
	artistID := seed.FirstArtistID()
	if artistID != "" {
		req.SeedArtists = []string{artistID}
	}

	tracks, recErr := o.spotify.Recommendations(ctx, req)
	if recErr != nil || len(tracks) == 0 {
		fallback, err := o.artistFallback(ctx, artistID, trackID, limit)
		if err != nil {
			if recErr == nil {
				recErr = errors.New("no recommendations")
			}
			return SimilarTracks{}, fmt.Errorf("service: similar tracks: %w", errors.Join(recErr, err))
		}
		o.log.Warn("recommendations unavailable, using artist top tracks",
			zap.String("track_id", trackID), zap.Error(recErr))
		tracks = fallback
	}

	return SimilarTracks{
		Tracks:        domain.EnhanceAll(tracks),
		SeedTrack:     seed,
		AudioFeatures: rawFeatures,
	}, nil
}

func (o *Orchestrator) artistFallback(ctx context.Context, artistID, seedID string, limit int) ([]domain.RawTrack, error) {
	if artistID == "" {
		return nil, errors.New("seed track has no artist")
	}
	top, err := o.spotify.ArtistTopTracks(ctx, artistID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RawTrack, 0, len(top))
	for _, t := range top {
		if t.ID() == seedID {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, errors.New("artist has no other tracks")
	}
	return out, nil
}
