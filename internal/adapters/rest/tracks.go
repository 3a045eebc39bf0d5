package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
)

type similarRequest struct {
	TrackID string `json:"track_id"`
	Limit   int    `json:"limit"`
}

// Search handles GET /search?q=&type=&limit=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		return badRequest("Query parameter required")
	}
	limit, err := queryInt(r, "limit", services.DefaultSearchLimit)
	if err != nil {
		return err
	}

	body, err := h.svc.Search(r.Context(), q, r.URL.Query().Get("type"), limit)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, body)
	return nil
}

// Genres handles GET /genres. It always answers 200, falling back to the
// static genre list.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, _ := h.svc.Genres(r.Context())
	writeJSON(w, http.StatusOK, map[string][]string{"genres": genres})
}

// GetTrack handles GET /track/{id}
func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) error {
	track, err := h.svc.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, track)
	return nil
}

// PlayURL handles GET /track/play-url?track_id=
func (h *Handler) PlayURL(w http.ResponseWriter, r *http.Request) error {
	id := strings.TrimSpace(r.URL.Query().Get("track_id"))
	if id == "" {
		return badRequest("Track ID required")
	}
	info, err := h.svc.PlayURL(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, info)
	return nil
}

// SimilarTracks handles POST /track/similar
func (h *Handler) SimilarTracks(w http.ResponseWriter, r *http.Request) error {
	var req similarRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	req.TrackID = strings.TrimSpace(req.TrackID)
	if req.TrackID == "" {
		return badRequest("Track ID required")
	}
	if req.Limit == 0 {
		req.Limit = services.DefaultSimilarLimit
	}

	similar, err := h.svc.Similar(r.Context(), req.TrackID, req.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrFeaturesUnavailable) {
			h.log.Warn("seed track has no audio features", zap.String("track_id", req.TrackID))
			return badRequest("Could not get audio features for track")
		}
		return err
	}
	writeJSON(w, http.StatusOK, similar)
	return nil
}
