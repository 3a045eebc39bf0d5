package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sakshi-kolawale/MoodTune/internal/adapters/sqlite"
	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
)

// --- Mocks ---

// Handler depends on the concrete *Orchestrator, so the tests build a real one
// around a stubbed provider. Methods without a stub func fall through to the
// nil embedded interface and panic.
type stubSpotify struct {
	ports.SpotifyProvider

	search          func(query, searchType string, limit int) (map[string]any, error)
	searchTracks    func(query string, limit int) ([]domain.RawTrack, error)
	genreSeeds      func() ([]string, error)
	recommendations func(req domain.RecommendationRequest) ([]domain.RawTrack, error)
	track           func(id string) (domain.RawTrack, error)
	audioFeatures   func(id string) (domain.RawAudioFeatures, error)
	matchTrack      func(title, artist string) (domain.Track, error)
	currentUser     func(token string) (domain.User, error)
	createPlaylist  func(token, userID, name, description string, public bool) (map[string]any, error)
	addTracks       func(token, playlistID string, uris []string) error
	userPlaylists   func(token string) ([]map[string]any, error)
}

func (s *stubSpotify) Search(ctx context.Context, query, searchType string, limit int) (map[string]any, error) {
	if s.search == nil {
		return s.SpotifyProvider.Search(ctx, query, searchType, limit)
	}
	return s.search(query, searchType, limit)
}

func (s *stubSpotify) SearchTracks(ctx context.Context, query string, limit int) ([]domain.RawTrack, error) {
	if s.searchTracks == nil {
		return s.SpotifyProvider.SearchTracks(ctx, query, limit)
	}
	return s.searchTracks(query, limit)
}

func (s *stubSpotify) GenreSeeds(ctx context.Context) ([]string, error) {
	if s.genreSeeds == nil {
		return s.SpotifyProvider.GenreSeeds(ctx)
	}
	return s.genreSeeds()
}

func (s *stubSpotify) Recommendations(ctx context.Context, req domain.RecommendationRequest) ([]domain.RawTrack, error) {
	if s.recommendations == nil {
		return s.SpotifyProvider.Recommendations(ctx, req)
	}
	return s.recommendations(req)
}

func (s *stubSpotify) Track(ctx context.Context, id string) (domain.RawTrack, error) {
	if s.track == nil {
		return s.SpotifyProvider.Track(ctx, id)
	}
	return s.track(id)
}

func (s *stubSpotify) AudioFeatures(ctx context.Context, id string) (domain.RawAudioFeatures, error) {
	if s.audioFeatures == nil {
		return s.SpotifyProvider.AudioFeatures(ctx, id)
	}
	return s.audioFeatures(id)
}

func (s *stubSpotify) MatchTrack(ctx context.Context, title, artist string) (domain.Track, error) {
	if s.matchTrack == nil {
		return s.SpotifyProvider.MatchTrack(ctx, title, artist)
	}
	return s.matchTrack(title, artist)
}

func (s *stubSpotify) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	if s.currentUser == nil {
		return s.SpotifyProvider.CurrentUser(ctx, token)
	}
	return s.currentUser(token)
}

func (s *stubSpotify) CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (map[string]any, error) {
	if s.createPlaylist == nil {
		return s.SpotifyProvider.CreatePlaylist(ctx, token, userID, name, description, public)
	}
	return s.createPlaylist(token, userID, name, description, public)
}

func (s *stubSpotify) AddTracksToPlaylist(ctx context.Context, token, playlistID string, uris []string) error {
	if s.addTracks == nil {
		return s.SpotifyProvider.AddTracksToPlaylist(ctx, token, playlistID, uris)
	}
	return s.addTracks(token, playlistID, uris)
}

func (s *stubSpotify) UserPlaylists(ctx context.Context, token string) ([]map[string]any, error) {
	if s.userPlaylists == nil {
		return s.SpotifyProvider.UserPlaylists(ctx, token)
	}
	return s.userPlaylists(token)
}

type failingClassifier struct{}

func (failingClassifier) Name() string { return "ollama" }

func (failingClassifier) ClassifyMood(ctx context.Context, text string) (string, error) {
	return "", errors.New("connection refused")
}

func rawTrack(id, name, isrc string) domain.RawTrack {
	return domain.RawTrack{
		"id":          id,
		"name":        name,
		"duration_ms": float64(185000),
		"preview_url": "https://p.scdn.co/mp3-preview/" + id,
		"artists": []any{
			map[string]any{"id": "a-" + id, "name": "Artist " + id},
		},
		"external_urls": map[string]any{"spotify": "https://open.spotify.com/track/" + id},
		"external_ids":  map[string]any{"isrc": isrc},
	}
}

// --- Helpers ---

func newTestHandler(t *testing.T, sp *stubSpotify, opts ...services.Option) *Handler {
	t.Helper()
	repo, err := sqlite.NewAdapter(filepath.Join(t.TempDir(), "moodtune.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	svc := services.NewOrchestrator(sp, repo, opts...)
	return NewHandler(svc, Options{
		Credentials: CredentialStatus{ClientIDSet: true, ClientSecretSet: true},
	})
}

func do(t *testing.T, h http.Handler, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%q)", err, rec.Body.String())
	}
	return out
}

// --- Tests ---

func TestHandler_ServiceEndpoints(t *testing.T) {
	h := newTestHandler(t, &stubSpotify{})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"root", "/", http.StatusOK, `"spotify_configured":true`},
		{"health", "/health", http.StatusOK, `"status":"healthy"`},
		{"ping", "/ping", http.StatusOK, `"message":"pong"`},
		{"unknown route", "/nope", http.StatusNotFound, `"error":"Endpoint not found"`},
		{"debug routes are off by default", "/test-spotify", http.StatusNotFound, "Endpoint not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, nil)
			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_Ready(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"provider answers", nil, http.StatusOK},
		{"provider down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			sp := &stubSpotify{searchTracks: func(q string, limit int) ([]domain.RawTrack, error) {
				gotQuery = q
				return nil, tt.err
			}}
			rec := do(t, newTestHandler(t, sp), http.MethodGet, "/ready", nil)
			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if gotQuery != "test" {
				t.Errorf("expected readiness search for %q, got %q", "test", gotQuery)
			}
		})
	}
}

func TestHandler_Search(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		searchErr      error
		expectedStatus int
		expectedBody   string
		expectedLimit  int
	}{
		{
			name:           "Bad Request: missing query",
			target:         "/search",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Query parameter required",
		},
		{
			name:           "Bad Request: non-integer limit",
			target:         "/search?q=hello&limit=ten",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid limit",
		},
		{
			name:           "Success: tracks are enhanced",
			target:         "/search?q=hello",
			expectedStatus: http.StatusOK,
			expectedBody:   `"formatted_duration":"3:05"`,
			expectedLimit:  20,
		},
		{
			name:           "Success: limit is clamped",
			target:         "/search?q=hello&limit=500",
			expectedStatus: http.StatusOK,
			expectedBody:   `"play_urls"`,
			expectedLimit:  50,
		},
		{
			name:           "Server Error: provider fails",
			target:         "/search?q=hello",
			searchErr:      errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "boom",
			expectedLimit:  20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			sp := &stubSpotify{search: func(q, typ string, limit int) (map[string]any, error) {
				gotLimit = limit
				if tt.searchErr != nil {
					return nil, tt.searchErr
				}
				return map[string]any{
					"tracks": map[string]any{"items": []any{map[string]any(rawTrack("t1", "Song", ""))}},
					"extra":  "kept",
				}, nil
			}}
			rec := do(t, newTestHandler(t, sp), http.MethodGet, tt.target, nil)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d, body: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rec.Body.String())
			}
			if gotLimit != tt.expectedLimit {
				t.Errorf("expected provider limit %d, got %d", tt.expectedLimit, gotLimit)
			}
		})
	}
}

func TestHandler_GenresFallback(t *testing.T) {
	sp := &stubSpotify{genreSeeds: func() ([]string, error) { return nil, errors.New("unavailable") }}
	rec := do(t, newTestHandler(t, sp), http.MethodGet, "/genres", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on fallback, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	genres, _ := body["genres"].([]any)
	if len(genres) != len(domain.FallbackGenres()) {
		t.Errorf("expected %d fallback genres, got %d", len(domain.FallbackGenres()), len(genres))
	}
}

func TestHandler_SmartGenerate(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		recsErr        error
		expectedStatus int
		expectedMethod string
		expectedSeed   string
	}{
		{
			name:           "recommendations",
			body:           map[string]any{"mood": "chill", "genre": "jazz", "limit": 5},
			expectedStatus: http.StatusOK,
			expectedMethod: services.MethodRecommendations,
			expectedSeed:   "jazz",
		},
		{
			name:           "provider genre outside the default seeds",
			body:           map[string]any{"mood": "energetic", "genre": "techno"},
			expectedStatus: http.StatusOK,
			expectedMethod: services.MethodRecommendations,
			expectedSeed:   "techno",
		},
		{
			name:           "search fallback",
			body:           map[string]any{"mood": "sad"},
			recsErr:        errors.New("recommendations gone"),
			expectedStatus: http.StatusOK,
			expectedMethod: services.MethodSearchFallback,
			expectedSeed:   "pop",
		},
		{
			name:           "unknown mood",
			body:           map[string]any{"mood": "furious"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := &stubSpotify{
				genreSeeds: func() ([]string, error) { return []string{"jazz", "pop", "techno"}, nil },
				recommendations: func(req domain.RecommendationRequest) ([]domain.RawTrack, error) {
					if tt.recsErr != nil {
						return nil, tt.recsErr
					}
					return []domain.RawTrack{rawTrack("r1", "Rec", "")}, nil
				},
				searchTracks: func(q string, limit int) ([]domain.RawTrack, error) {
					return []domain.RawTrack{rawTrack("s1", "Found", "")}, nil
				},
			}
			rec := do(t, newTestHandler(t, sp), http.MethodPost, "/playlist/smart-generate", tt.body)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d, body: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedMethod == "" {
				return
			}
			body := decodeBody(t, rec)
			if body["method"] != tt.expectedMethod {
				t.Errorf("expected method %q, got %v", tt.expectedMethod, body["method"])
			}
			recs, _ := body["recommendations"].(map[string]any)
			tracks, _ := recs["tracks"].([]any)
			if len(tracks) != 1 {
				t.Errorf("expected 1 track under recommendations.tracks, got %d", len(tracks))
			}
			seeds, _ := body["seed_genres"].([]any)
			if len(seeds) != 1 || seeds[0] != tt.expectedSeed {
				t.Errorf("expected seed_genres [%s], got %v", tt.expectedSeed, body["seed_genres"])
			}
			if _, ok := body["target_features"].(map[string]any); !ok {
				t.Errorf("expected target_features object, got %v", body["target_features"])
			}
		})
	}
}

func TestHandler_SimilarTracks(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		featuresErr    error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Bad Request: missing track id",
			body:           map[string]any{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Track ID required",
		},
		{
			name:           "Bad Request: features unavailable",
			body:           map[string]any{"track_id": "seed"},
			featuresErr:    domain.ErrFeaturesUnavailable,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Could not get audio features for track",
		},
		{
			name:           "Success",
			body:           map[string]any{"track_id": "seed"},
			expectedStatus: http.StatusOK,
			expectedBody:   `"seed_track"`,
		},
		{
			name:           "Success: provider audio features pass through",
			body:           map[string]any{"track_id": "seed"},
			expectedStatus: http.StatusOK,
			expectedBody:   `"loudness":-7.25`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			sp := &stubSpotify{
				audioFeatures: func(id string) (domain.RawAudioFeatures, error) {
					if tt.featuresErr != nil {
						return nil, tt.featuresErr
					}
					return domain.RawAudioFeatures{"id": id, "energy": 0.5, "valence": 0.4, "loudness": -7.25, "key": float64(5)}, nil
				},
				track: func(id string) (domain.RawTrack, error) { return rawTrack(id, "Seed", ""), nil },
				recommendations: func(req domain.RecommendationRequest) ([]domain.RawTrack, error) {
					gotLimit = req.Limit
					return []domain.RawTrack{rawTrack("r1", "Rec", "")}, nil
				},
			}
			rec := do(t, newTestHandler(t, sp), http.MethodPost, "/track/similar", tt.body)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d, body: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rec.Body.String())
			}
			if tt.expectedStatus == http.StatusOK && gotLimit != services.DefaultSimilarLimit {
				t.Errorf("expected default limit %d, got %d", services.DefaultSimilarLimit, gotLimit)
			}
		})
	}
}

func TestHandler_PlayURL(t *testing.T) {
	sp := &stubSpotify{track: func(id string) (domain.RawTrack, error) { return rawTrack(id, "Song", ""), nil }}
	h := newTestHandler(t, sp)

	rec := do(t, h, http.MethodGet, "/track/play-url", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without track_id, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/track/play-url?track_id=abc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["spotify_app"] != "spotify:track:abc" {
		t.Errorf("unexpected spotify_app %v", body["spotify_app"])
	}
	if body["artist_name"] != "Artist abc" {
		t.Errorf("unexpected artist_name %v", body["artist_name"])
	}
}

func TestHandler_GetTrackNotFound(t *testing.T) {
	sp := &stubSpotify{track: func(id string) (domain.RawTrack, error) { return nil, domain.ErrNotFound }}
	rec := do(t, newTestHandler(t, sp), http.MethodGet, "/track/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_CreatePlaylist(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		userErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Bad Request: missing token",
			body:           map[string]any{"name": "Mine"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Request: malformed json",
			body:           `{invalid-json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
		{
			name:           "Unauthorized: provider rejects token",
			body:           map[string]any{"access_token": "tok", "name": "Mine"},
			userErr:        domain.ErrUnauthorized,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Created",
			body:           map[string]any{"access_token": "tok", "name": "Mine", "track_uris": []string{"spotify:track:1"}},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"playlist_url":"https://open.spotify.com/playlist/pl1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := &stubSpotify{
				currentUser: func(token string) (domain.User, error) {
					return domain.User{ID: "u1"}, tt.userErr
				},
				createPlaylist: func(token, userID, name, desc string, public bool) (map[string]any, error) {
					if !public {
						t.Errorf("expected public to default to true")
					}
					return map[string]any{
						"id":            "pl1",
						"external_urls": map[string]any{"spotify": "https://open.spotify.com/playlist/pl1"},
					}, nil
				},
				addTracks: func(token, playlistID string, uris []string) error { return nil },
			}
			rec := do(t, newTestHandler(t, sp), http.MethodPost, "/playlist/create", tt.body)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d, body: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_UserPlaylists(t *testing.T) {
	var gotToken string
	sp := &stubSpotify{userPlaylists: func(token string) ([]map[string]any, error) {
		gotToken = token
		return []map[string]any{{"id": "p1"}}, nil
	}}
	h := newTestHandler(t, sp)

	rec := do(t, h, http.MethodGet, "/user/playlists", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/user/playlists", nil, "Authorization", "Bearer user-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotToken != "user-token" {
		t.Errorf("expected bearer token to be forwarded, got %q", gotToken)
	}
	if !strings.Contains(rec.Body.String(), `"playlists":[{"id":"p1"}]`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Moods(t *testing.T) {
	h := newTestHandler(t, &stubSpotify{}, services.WithClassifier(failingClassifier{}))

	rec := do(t, h, http.MethodGet, "/moods", nil)
	body := decodeBody(t, rec)
	moods, _ := body["moods"].([]any)
	if len(moods) != 5 {
		t.Fatalf("expected 5 moods, got %d", len(moods))
	}
	first, _ := moods[0].(map[string]any)
	if first["name"] != "happy" {
		t.Errorf("expected happy first, got %v", first["name"])
	}

	rec = do(t, h, http.MethodPost, "/mood/classify", map[string]string{"lyrics": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty lyrics, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/mood/classify", map[string]string{"lyrics": "dance all night at the club"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["mood"] != "party" || body["source"] != services.SourceKeywords {
		t.Errorf("expected party from keywords, got %v", body)
	}
}

func TestHandler_DraftLifecycle(t *testing.T) {
	sp := &stubSpotify{
		track: func(id string) (domain.RawTrack, error) {
			if strings.HasPrefix(id, "bare") {
				return rawTrack(id, "Song "+id, ""), nil
			}
			return rawTrack(id, "Song "+id, "ISRC-"+id), nil
		},
		matchTrack: func(title, artist string) (domain.Track, error) {
			if title == "Unknown" {
				return domain.Track{}, ports.NoConfidentMatchError{Title: title, Artist: artist}
			}
			return domain.Track{ID: "m1", Title: title, Artist: artist, ISRC: "ISRC-m1"}, nil
		},
	}
	h := newTestHandler(t, sp)

	rec := do(t, h, http.MethodPost, "/drafts", map[string]string{"name": "Evening", "mood": "chill"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	id, _ := decodeBody(t, rec)["id"].(string)
	if id == "" {
		t.Fatal("create draft: missing id")
	}
	base := "/drafts/" + id

	steps := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
		expectedBody   string
	}{
		{"add by id", http.MethodPost, base + "/tracks", map[string]string{"track_id": "t1"}, http.StatusCreated, `"isrc":"ISRC-t1"`},
		{"add by title and artist", http.MethodPost, base + "/tracks", map[string]string{"title": "Song", "artist": "Band"}, http.StatusCreated, `"id":"m1"`},
		{"duplicate track", http.MethodPost, base + "/tracks", map[string]string{"track_id": "t1"}, http.StatusConflict, ""},
		{"no confident match", http.MethodPost, base + "/tracks", map[string]string{"title": "Unknown", "artist": "Nobody"}, http.StatusUnprocessableEntity, `"code":"NO_CONFIDENT_MATCH"`},
		{"missing track fields", http.MethodPost, base + "/tracks", map[string]string{"title": "Only"}, http.StatusBadRequest, ""},
		{"list", http.MethodGet, "/drafts", nil, http.StatusOK, `"track_count":2`},
		{"analysis", http.MethodGet, base + "/analysis", nil, http.StatusOK, `"closest_mood"`},
		{"remove", http.MethodDelete, base + "/tracks/t1", nil, http.StatusOK, `"id":"m1"`},
		{"remove missing", http.MethodDelete, base + "/tracks/t1", nil, http.StatusNotFound, ""},
		{"get", http.MethodGet, base, nil, http.StatusOK, `"mood":"chill"`},
		{"add track without isrc", http.MethodPost, base + "/tracks", map[string]string{"track_id": "bare1"}, http.StatusCreated, `"id":"bare1"`},
		{"same track without isrc again", http.MethodPost, base + "/tracks", map[string]string{"track_id": "bare1"}, http.StatusConflict, ""},
		{"stored draft matches responses", http.MethodGet, "/drafts", nil, http.StatusOK, `"track_count":2`},
		{"publish without token", http.MethodPost, base + "/publish", map[string]any{}, http.StatusBadRequest, ""},
		{"missing draft", http.MethodGet, "/drafts/does-not-exist", nil, http.StatusNotFound, ""},
		{"unknown mood", http.MethodPost, "/drafts", map[string]string{"name": "x", "mood": "furious"}, http.StatusBadRequest, ""},
		{"empty name", http.MethodPost, "/drafts", map[string]string{"name": " "}, http.StatusBadRequest, ""},
	}

	for _, st := range steps {
		rec := do(t, h, st.method, st.path, st.body)
		if rec.Code != st.expectedStatus {
			t.Errorf("%s: expected status %d, got %d (%s)", st.name, st.expectedStatus, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), st.expectedBody) {
			t.Errorf("%s: expected body to contain %q, got %q", st.name, st.expectedBody, rec.Body.String())
		}
	}
}

func TestHandler_AddDraftTrackRequiresJSON(t *testing.T) {
	h := newTestHandler(t, &stubSpotify{})
	req := httptest.NewRequest(http.MethodPost, "/drafts/any/tracks", strings.NewReader("track_id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}

func TestHandler_RecoversFromPanic(t *testing.T) {
	// No track stub: the embedded nil provider panics.
	rec := do(t, newTestHandler(t, &stubSpotify{}), http.MethodGet, "/track/abc", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Internal server error"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestHandler_DebugRoutes(t *testing.T) {
	repo, err := sqlite.NewAdapter(filepath.Join(t.TempDir(), "debug.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	sp := &stubSpotify{
		searchTracks: func(q string, limit int) ([]domain.RawTrack, error) { return nil, nil },
		genreSeeds:   func() ([]string, error) { return []string{"pop", "rock"}, nil },
	}
	h := NewHandler(services.NewOrchestrator(sp, repo), Options{
		Debug:       true,
		Credentials: CredentialStatus{ClientIDSet: true},
	})

	rec := do(t, h, http.MethodGet, "/test-spotify", nil)
	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Errorf("expected success, got %v", body)
	}
	creds, _ := body["credentials"].(map[string]any)
	if creds["client_id_set"] != true || creds["client_secret_set"] != false {
		t.Errorf("unexpected credential status %v", creds)
	}

	rec = do(t, h, http.MethodGet, "/test-genres", nil)
	if !strings.Contains(rec.Body.String(), `"genre_count":2`) {
		t.Errorf("unexpected genres diagnostic %s", rec.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrValidation, http.StatusBadRequest, ""},
		{domain.ErrInvalidMood, http.StatusBadRequest, ""},
		{domain.ErrUnauthorized, http.StatusUnauthorized, ""},
		{domain.ErrNotFound, http.StatusNotFound, ""},
		{domain.ErrDuplicateISRC, http.StatusConflict, ""},
		{domain.ErrDuplicateTrack, http.StatusConflict, ""},
		{domain.ErrUnavailable, http.StatusServiceUnavailable, ""},
		{ports.NoConfidentMatchError{Title: "a", Artist: "b"}, http.StatusUnprocessableEntity, errCodeNoConfidentMatch},
		{errors.New("other"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		status, code := statusFor(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("statusFor(%v) = %d %q, want %d %q", tt.err, status, code, tt.status, tt.code)
		}
	}
}
