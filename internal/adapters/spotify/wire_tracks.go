package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// Track fetches one catalog track.
func (c *Client) Track(ctx context.Context, id string) (domain.RawTrack, error) {
	var track domain.RawTrack
	if err := c.getJSON(ctx, "/tracks/"+url.PathEscape(id), nil, &track); err != nil {
		return nil, fmt.Errorf("spotify adapter: track %s: %w", id, err)
	}
	return track, nil
}

// AudioFeatures returns the provider's analysis for a track. Restricted,
// missing and all-zero analyses report domain.ErrFeaturesUnavailable.
func (c *Client) AudioFeatures(ctx context.Context, trackID string) (domain.RawAudioFeatures, error) {
	var features domain.RawAudioFeatures
	err := c.getJSON(ctx, "/audio-features/"+url.PathEscape(trackID), nil, &features)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusForbidden || apiErr.Status == http.StatusNotFound) {
			return nil, fmt.Errorf("spotify adapter: audio features %s: %w", trackID, domain.ErrFeaturesUnavailable)
		}
		return nil, fmt.Errorf("spotify adapter: audio features %s: %w", trackID, err)
	}
	if features == nil || features.Features().IsZero() {
		return nil, fmt.Errorf("spotify adapter: audio features %s: %w", trackID, domain.ErrFeaturesUnavailable)
	}
	return features, nil
}
