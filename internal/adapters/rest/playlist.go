package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
)

type smartGenerateRequest struct {
	Mood  string `json:"mood"`
	Genre string `json:"genre"`
	Limit int    `json:"limit"`
}

type smartGenerateResponse struct {
	Recommendations struct {
		Tracks []domain.RawTrack `json:"tracks"`
	} `json:"recommendations"`
	Mood           string                `json:"mood"`
	Genre          string                `json:"genre"`
	SeedGenres     []string              `json:"seed_genres"`
	TargetFeatures domain.FeatureTargets `json:"target_features"`
	Method         string                `json:"method"`
}

type createPlaylistRequest struct {
	AccessToken string   `json:"access_token"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TrackURIs   []string `json:"track_uris"`
	Public      *bool    `json:"public"`
}

// SmartGenerate handles POST /playlist/smart-generate
func (h *Handler) SmartGenerate(w http.ResponseWriter, r *http.Request) error {
	var req smartGenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Limit == 0 {
		req.Limit = services.DefaultGenerateSize
	}

	result, err := h.svc.SmartGenerate(r.Context(), services.SmartRequest{
		Mood:  req.Mood,
		Genre: strings.TrimSpace(req.Genre),
		Limit: req.Limit,
	})
	if err != nil {
		return err
	}

	resp := smartGenerateResponse{
		Mood:           result.Mood,
		Genre:          result.Genre,
		SeedGenres:     result.SeedGenres,
		TargetFeatures: result.TargetFeatures,
		Method:         result.Method,
	}
	resp.Recommendations.Tracks = result.Tracks
	writeJSON(w, http.StatusOK, resp)
	return nil
}

// CreatePlaylist handles POST /playlist/create
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) error {
	var req createPlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	public := true
	if req.Public != nil {
		public = *req.Public
	}

	result, err := h.svc.CreatePlaylist(r.Context(), services.PublishRequest{
		AccessToken: strings.TrimSpace(req.AccessToken),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		TrackURIs:   req.TrackURIs,
		Public:      public,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, result)
	return nil
}

// UserPlaylists handles GET /user/playlists. A bearer token is required.
func (h *Handler) UserPlaylists(w http.ResponseWriter, r *http.Request) error {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return nil
	}
	playlists, err := h.svc.UserPlaylists(r.Context(), token)
	if err != nil {
		return err
	}
	if playlists == nil {
		playlists = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
	return nil
}

// PlaylistTracks handles GET /playlist/{id}/tracks. The bearer token is optional.
func (h *Handler) PlaylistTracks(w http.ResponseWriter, r *http.Request) error {
	items, err := h.svc.PlaylistItems(r.Context(), bearerToken(r), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
	return nil
}
