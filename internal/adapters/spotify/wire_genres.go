package spotify

import (
	"context"
	"fmt"
)

// GenreSeeds lists the genres the recommendations endpoint accepts.
func (c *Client) GenreSeeds(ctx context.Context) ([]string, error) {
	var body struct {
		Genres []string `json:"genres"`
	}
	if err := c.getJSON(ctx, "/recommendations/available-genre-seeds", nil, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: genre seeds: %w", err)
	}
	return body.Genres, nil
}
