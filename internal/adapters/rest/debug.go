package rest

import (
	"net/http"

	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
)

// TestSpotify handles GET /test-spotify
func (h *Handler) TestSpotify(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"credentials": h.opts.Credentials}
	if err := h.svc.Ready(r.Context()); err != nil {
		body["status"] = "error"
		body["error"] = err.Error()
		writeJSON(w, http.StatusOK, body)
		return
	}
	body["status"] = "success"
	body["message"] = "Spotify connection working"
	writeJSON(w, http.StatusOK, body)
}

// TestGenres handles GET /test-genres
func (h *Handler) TestGenres(w http.ResponseWriter, r *http.Request) {
	genres, fallback := h.svc.Genres(r.Context())
	status := "success"
	if fallback {
		status = "error"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      status,
		"fallback":    fallback,
		"genre_count": len(genres),
		"sample":      genres[:min(10, len(genres))],
	})
}

// TestRecommendations handles GET /test-recommendations
func (h *Handler) TestRecommendations(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SmartGenerate(r.Context(), services.SmartRequest{Mood: "happy", Genre: "pop", Limit: 5})
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "error", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"method":      result.Method,
		"seed_genres": result.SeedGenres,
		"track_count": len(result.Tracks),
	})
}
