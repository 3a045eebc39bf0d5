package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// ArtistTopTracks returns an artist's most popular tracks in the configured market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID string) ([]domain.RawTrack, error) {
	params := url.Values{}
	params.Set("market", c.market)

	var body struct {
		Tracks []domain.RawTrack `json:"tracks"`
	}
	if err := c.getJSON(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks", params, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: top tracks for artist %s: %w", artistID, err)
	}
	return body.Tracks, nil
}
