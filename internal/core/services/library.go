package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// PublishRequest creates a provider playlist for the token owner.
type PublishRequest struct {
	AccessToken string
	Name        string
	Description string
	TrackURIs   []string
	Public      bool
}

// PublishResult describes a playlist created at the provider.
type PublishResult struct {
	Playlist    map[string]any `json:"playlist"`
	TracksAdded int            `json:"tracks_added"`
	PlaylistURL string         `json:"playlist_url"`
}

// CreatePlaylist creates a playlist in the user's library and fills it.
func (o *Orchestrator) CreatePlaylist(ctx context.Context, req PublishRequest) (PublishResult, error) {
	if req.AccessToken == "" {
		return PublishResult{}, fmt.Errorf("service: create playlist: access token: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Name) == "" {
		return PublishResult{}, fmt.Errorf("service: create playlist: name: %w", domain.ErrValidation)
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Created by MoodTune on %s", o.now().Format("2006-01-02"))
	}

	user, err := o.spotify.CurrentUser(ctx, req.AccessToken)
	if err != nil {
		return PublishResult{}, fmt.Errorf("service: create playlist: %w", err)
	}

	playlist, err := o.spotify.CreatePlaylist(ctx, req.AccessToken, user.ID, req.Name, description, req.Public)
	if err != nil {
		return PublishResult{}, fmt.Errorf("service: create playlist: %w", err)
	}

	playlistID, _ := playlist["id"].(string)
	if len(req.TrackURIs) > 0 {
		if err := o.spotify.AddTracksToPlaylist(ctx, req.AccessToken, playlistID, req.TrackURIs); err != nil {
			return PublishResult{}, fmt.Errorf("service: create playlist: %w", err)
		}
	}

	o.log.Info("playlist created",
		zap.String("playlist_id", playlistID),
		zap.String("user_id", user.ID),
		zap.Int("tracks", len(req.TrackURIs)))

	return PublishResult{
		Playlist:    playlist,
		TracksAdded: len(req.TrackURIs),
		PlaylistURL: externalURL(playlist),
	}, nil
}

// UserPlaylists lists the token owner's playlists.
func (o *Orchestrator) UserPlaylists(ctx context.Context, token string) ([]map[string]any, error) {
	if token == "" {
		return nil, fmt.Errorf("service: user playlists: %w", domain.ErrUnauthorized)
	}
	items, err := o.spotify.UserPlaylists(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("service: user playlists: %w", err)
	}
	if items == nil {
		items = []map[string]any{}
	}
	return items, nil
}

// PlaylistItems lists a provider playlist's items with each track enhanced.
func (o *Orchestrator) PlaylistItems(ctx context.Context, token, playlistID string) ([]map[string]any, error) {
	items, err := o.spotify.PlaylistItems(ctx, token, playlistID)
	if err != nil {
		return nil, fmt.Errorf("service: playlist items: %w", err)
	}
	if items == nil {
		items = []map[string]any{}
	}
	for _, item := range items {
		if track, ok := item["track"].(map[string]any); ok {
			domain.RawTrack(track).Enhance()
		}
	}
	return items, nil
}

func externalURL(obj map[string]any) string {
	urls, _ := obj["external_urls"].(map[string]any)
	s, _ := urls["spotify"].(string)
	return s
}
