package rest

import "net/http"

type classifyRequest struct {
	Lyrics string `json:"lyrics"`
}

// ListMoods handles GET /moods
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"moods": h.svc.Moods()})
}

// ClassifyMood handles POST /mood/classify
func (h *Handler) ClassifyMood(w http.ResponseWriter, r *http.Request) error {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	result, err := h.svc.ClassifyMood(r.Context(), req.Lyrics)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}
