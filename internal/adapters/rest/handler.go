package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
)

// Options configures the HTTP adapter.
type Options struct {
	Logger *zap.Logger
	// Debug mounts the /test-* diagnostic routes.
	Debug bool
	// Credentials reports which provider credentials are set. Values are never exposed.
	Credentials CredentialStatus
}

// CredentialStatus records whether each provider credential is present.
type CredentialStatus struct {
	ClientIDSet     bool `json:"client_id_set"`
	ClientSecretSet bool `json:"client_secret_set"`
}

// Configured reports whether both credentials are set.
func (c CredentialStatus) Configured() bool {
	return c.ClientIDSet && c.ClientSecretSet
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Orchestrator
	log    *zap.Logger
	opts   Options
	router chi.Router
	now    func() time.Time
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		svc:    svc,
		log:    log.Named("http"),
		opts:   opts,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	r := h.router
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(h.recoverPanics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)
	r.Get("/ping", h.Ping)
	r.Get("/ready", h.handle(h.Ready))

	r.Get("/search", h.handle(h.Search))
	r.Get("/genres", h.Genres)

	r.Route("/playlist", func(r chi.Router) {
		r.Post("/smart-generate", h.handle(h.SmartGenerate))
		r.Post("/create", h.handle(h.CreatePlaylist))
		r.Get("/{id}/tracks", h.handle(h.PlaylistTracks))
	})
	r.Get("/user/playlists", h.handle(h.UserPlaylists))

	r.Route("/track", func(r chi.Router) {
		r.Post("/similar", h.handle(h.SimilarTracks))
		r.Get("/play-url", h.handle(h.PlayURL))
		r.Get("/{id}", h.handle(h.GetTrack))
	})

	r.Get("/moods", h.ListMoods)
	r.Post("/mood/classify", h.handle(h.ClassifyMood))

	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", h.handle(h.CreateDraft))
		r.Get("/", h.handle(h.ListDrafts))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handle(h.GetDraft))
			r.Post("/tracks", h.handle(h.AddDraftTrack))
			r.Delete("/tracks/{trackID}", h.handle(h.RemoveDraftTrack))
			r.Get("/analysis", h.handle(h.DraftAnalysis))
			r.Post("/publish", h.handle(h.PublishDraft))
		})
	})

	if h.opts.Debug {
		r.Get("/test-spotify", h.TestSpotify)
		r.Get("/test-genres", h.TestGenres)
		r.Get("/test-recommendations", h.TestRecommendations)
	}
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}

// Root reports that the relay is up and whether provider credentials are set.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "MoodTune relay is running",
		"timestamp":          h.timestamp(),
		"spotify_configured": h.opts.Credentials.Configured(),
	})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "timestamp": h.timestamp()})
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong", "timestamp": h.timestamp()})
}

// Ready handles GET /ready by running a one-result provider search.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) error {
	if err := h.svc.Ready(r.Context()); err != nil {
		h.log.Warn("readiness check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return nil
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	return nil
}
