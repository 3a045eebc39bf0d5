package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
)

type createDraftRequest struct {
	Name string `json:"name"`
	Mood string `json:"mood"`
}

// addTrackRequest defines what the client sends us: a catalog id, or a
// title and artist to match.
type addTrackRequest struct {
	TrackID string `json:"track_id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
}

type publishDraftRequest struct {
	AccessToken string `json:"access_token"`
	Description string `json:"description"`
	Public      *bool  `json:"public"`
}

// CreateDraft handles POST /drafts
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) error {
	var req createDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	draft, err := h.svc.CreateDraft(r.Context(), strings.TrimSpace(req.Name), req.Mood)
	if err != nil {
		return err
	}
	w.Header().Set("Location", "/drafts/"+draft.ID)
	writeJSON(w, http.StatusCreated, draft)
	return nil
}

// ListDrafts handles GET /drafts
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) error {
	drafts, err := h.svc.ListDrafts(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"drafts": drafts})
	return nil
}

// GetDraft handles GET /drafts/{id}
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) error {
	draft, err := h.svc.GetDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, draft)
	return nil
}

// AddDraftTrack handles POST /drafts/{id}/tracks
func (h *Handler) AddDraftTrack(w http.ResponseWriter, r *http.Request) error {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return nil
	}

	var req addTrackRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	in := services.DraftTrackInput{
		TrackID: strings.TrimSpace(req.TrackID),
		Title:   strings.TrimSpace(req.Title),
		Artist:  strings.TrimSpace(req.Artist),
	}
	if in.TrackID == "" && (in.Title == "" || in.Artist == "") {
		return badRequest("track_id, or title and artist, are required")
	}

	draft, err := h.svc.AddDraftTrack(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, draft)
	return nil
}

// RemoveDraftTrack handles DELETE /drafts/{id}/tracks/{trackID}
func (h *Handler) RemoveDraftTrack(w http.ResponseWriter, r *http.Request) error {
	draft, err := h.svc.RemoveDraftTrack(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "trackID"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, draft)
	return nil
}

// DraftAnalysis handles GET /drafts/{id}/analysis
func (h *Handler) DraftAnalysis(w http.ResponseWriter, r *http.Request) error {
	analysis, err := h.svc.AnalyzeDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, analysis)
	return nil
}

// PublishDraft handles POST /drafts/{id}/publish
func (h *Handler) PublishDraft(w http.ResponseWriter, r *http.Request) error {
	var req publishDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	public := true
	if req.Public != nil {
		public = *req.Public
	}

	result, err := h.svc.PublishDraft(r.Context(), chi.URLParam(r, "id"),
		strings.TrimSpace(req.AccessToken), req.Description, public)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, result)
	return nil
}
