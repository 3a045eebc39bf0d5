package spotify

import "github.com/sakshi-kolawale/MoodTune/internal/core/domain"

type spotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}

type trackPage struct {
	Tracks struct {
		Items []domain.RawTrack `json:"items"`
	} `json:"tracks"`
}

type objectPage struct {
	Items []map[string]any `json:"items"`
	Next  *string          `json:"next"`
}
