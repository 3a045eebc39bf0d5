package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// Generation methods reported with a smart playlist.
const (
	MethodRecommendations = "recommendations"
	MethodSearchFallback  = "search_fallback"
)

// SmartRequest asks for a mood-driven track list.
type SmartRequest struct {
	Mood  string
	Genre string
	Limit int
}

// SmartPlaylist is a generated, unsaved track list.
type SmartPlaylist struct {
	Tracks         []domain.RawTrack
	Mood           string
	Genre          string
	SeedGenres     []string
	TargetFeatures domain.FeatureTargets
	Method         string
}

// safeGenres returns the provider's genre seeds, or the short default list
// when the provider fails or offers none.
func (o *Orchestrator) safeGenres(ctx context.Context) []string {
	genres, err := o.spotify.GenreSeeds(ctx)
	if err != nil || len(genres) == 0 {
		o.log.Warn("genre seeds unavailable, using default seeds", zap.Error(err))
		return append([]string(nil), domain.SafeDefaultGenres...)
	}
	return genres
}

// SmartGenerate builds a track list for a mood and optional genre.
func (o *Orchestrator) SmartGenerate(ctx context.Context, req SmartRequest) (SmartPlaylist, error) {
	profile, err := domain.LookupMood(req.Mood)
	if err != nil {
		return SmartPlaylist{}, fmt.Errorf("service: smart generate: %w", err)
	}
	limit := clamp(req.Limit, 1, MaxGenerateLimit)
	genre := strings.TrimSpace(req.Genre)
	seeds := domain.SeedGenres(genre, o.safeGenres(ctx))

	result := SmartPlaylist{
		Mood:           profile.Name,
		Genre:          genre,
		SeedGenres:     seeds,
		TargetFeatures: profile.Targets,
	}

	tracks, recErr := o.spotify.Recommendations(ctx, domain.RecommendationRequest{
		SeedGenres: seeds,
		Targets:    profile.Targets,
		Limit:      limit,
	})
	if recErr == nil && len(tracks) > 0 {
		result.Tracks = domain.EnhanceAll(tracks)
		result.Method = MethodRecommendations
		return result, nil
	}
	o.log.Warn("recommendations unavailable, falling back to search",
		zap.String("mood", profile.Name),
		zap.Strings("seed_genres", seeds),
		zap.Error(recErr))

	query := strings.TrimSpace(profile.SearchTerms + " " + genre)
	tracks, err = o.spotify.SearchTracks(ctx, query, limit)
	if err != nil {
		if recErr == nil {
			return SmartPlaylist{}, fmt.Errorf("service: smart generate: %w", err)
		}
		return SmartPlaylist{}, fmt.Errorf("service: smart generate: %w", errors.Join(recErr, err))
	}
	if tracks == nil {
		tracks = []domain.RawTrack{}
	}
	result.Tracks = domain.EnhanceAll(tracks)
	result.Method = MethodSearchFallback
	return result, nil
}
