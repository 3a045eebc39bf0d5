package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

const (
	addTracksChunk    = 100
	playlistPageLimit = 50
	itemsPageLimit    = 100
)

// CurrentUser resolves the owner of token.
func (c *Client) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	var user spotifyUser
	err := c.call(ctx, apiRequest{method: http.MethodGet, path: "/me", token: token}, &user)
	if err != nil {
		return domain.User{}, fmt.Errorf("spotify adapter: current user: %w", err)
	}
	return domain.User{ID: user.ID, DisplayName: user.DisplayName}, nil
}

// CreatePlaylist creates an empty playlist owned by userID.
func (c *Client) CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (map[string]any, error) {
	var playlist map[string]any
	err := c.call(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/users/" + url.PathEscape(userID) + "/playlists",
		body:   createPlaylistRequest{Name: name, Description: description, Public: public},
		token:  token,
	}, &playlist)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: create playlist %q: %w", name, err)
	}
	return playlist, nil
}

// AddTracksToPlaylist appends uris in provider-sized batches.
func (c *Client) AddTracksToPlaylist(ctx context.Context, token, playlistID string, uris []string) error {
	path := "/playlists/" + url.PathEscape(playlistID) + "/tracks"
	for start := 0; start < len(uris); start += addTracksChunk {
		end := min(start+addTracksChunk, len(uris))
		err := c.call(ctx, apiRequest{
			method: http.MethodPost,
			path:   path,
			body:   addTracksRequest{URIs: uris[start:end]},
			token:  token,
		}, nil)
		if err != nil {
			return fmt.Errorf("spotify adapter: add tracks %d-%d to playlist %s: %w", start, end, playlistID, err)
		}
	}
	return nil
}

// UserPlaylists returns the first page of the token owner's playlists.
func (c *Client) UserPlaylists(ctx context.Context, token string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(playlistPageLimit))

	var page objectPage
	err := c.call(ctx, apiRequest{method: http.MethodGet, path: "/me/playlists", query: params, token: token}, &page)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: user playlists: %w", err)
	}
	return page.Items, nil
}

// PlaylistItems returns the first page of a playlist's items. Public
// playlists can be read without a user token.
func (c *Client) PlaylistItems(ctx context.Context, token, playlistID string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(itemsPageLimit))

	var page objectPage
	err := c.call(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/playlists/" + url.PathEscape(playlistID) + "/tracks",
		query:  params,
		token:  token,
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: playlist %s items: %w", playlistID, err)
	}
	return page.Items, nil
}
