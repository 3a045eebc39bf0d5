package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// Recommendations asks the provider for tracks near the given seeds and targets.
func (c *Client) Recommendations(ctx context.Context, req domain.RecommendationRequest) ([]domain.RawTrack, error) {
	params := recommendationParams(req)
	if c.market != "" {
		params.Set("market", c.market)
	}

	var body struct {
		Tracks []domain.RawTrack `json:"tracks"`
	}
	if err := c.getJSON(ctx, "/recommendations", params, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: recommendations: %w", err)
	}
	return body.Tracks, nil
}

func recommendationParams(req domain.RecommendationRequest) url.Values {
	params := url.Values{}
	if len(req.SeedGenres) > 0 {
		params.Set("seed_genres", strings.Join(req.SeedGenres, ","))
	}
	if len(req.SeedTracks) > 0 {
		params.Set("seed_tracks", strings.Join(req.SeedTracks, ","))
	}
	if len(req.SeedArtists) > 0 {
		params.Set("seed_artists", strings.Join(req.SeedArtists, ","))
	}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}
	for _, key := range req.Targets.Keys() {
		params.Set(key, strconv.FormatFloat(req.Targets[key], 'f', -1, 64))
	}
	return params
}
