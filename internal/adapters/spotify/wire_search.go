package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

// Search passes a catalog search through untouched.
func (c *Client) Search(ctx context.Context, query, searchType string, limit int) (map[string]any, error) {
	if searchType == "" {
		searchType = "track"
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", searchType)
	params.Set("limit", strconv.Itoa(limit))

	var body map[string]any
	if err := c.getJSON(ctx, "/search", params, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: search %q: %w", query, err)
	}
	return body, nil
}

// SearchTracks runs a track search and returns the raw items.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]domain.RawTrack, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))
	if c.market != "" {
		params.Set("market", c.market)
	}

	var page trackPage
	if err := c.getJSON(ctx, "/search", params, &page); err != nil {
		return nil, fmt.Errorf("spotify adapter: search tracks %q: %w", query, err)
	}
	return page.Tracks.Items, nil
}

// MatchTrack resolves free-text title and artist to the best confident
// catalog match.
func (c *Client) MatchTrack(ctx context.Context, title, artist string) (domain.Track, error) {
	queryTitle := fallbackIfEmpty(normalizeSearchInput(title), title)
	queryArtist := fallbackIfEmpty(normalizeSearchInput(artist), artist)

	items, err := c.SearchTracks(ctx, fmt.Sprintf("track:%s artist:%s", queryTitle, queryArtist), matchCandidates)
	if err != nil {
		return domain.Track{}, err
	}

	idx, score := bestMatch(title, artist, items)
	if idx < 0 {
		c.log.Info("no confident match",
			zap.String("title", title),
			zap.String("artist", artist),
			zap.Int("candidates", len(items)))
		return domain.Track{}, ports.NoConfidentMatchError{Title: title, Artist: artist}
	}

	c.log.Debug("matched track",
		zap.String("title", title),
		zap.String("track_id", items[idx].ID()),
		zap.Float64("score", score))
	return items[idx].ToTrack(), nil
}
