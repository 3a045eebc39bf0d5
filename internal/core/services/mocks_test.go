package services

import (
	"context"
	"sort"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

// --- Mocks ---

// mockSpotify is a lightweight mock of the spotify provider.
type mockSpotify struct {
	searchBody map[string]any
	searchErr  error

	searchTracks    []domain.RawTrack
	searchTracksErr error
	lastQuery       string

	genres    []string
	genresErr error

	recs        []domain.RawTrack
	recsErr     error
	lastRecsReq domain.RecommendationRequest

	tracks   map[string]domain.RawTrack
	trackErr error

	features    domain.RawAudioFeatures
	featuresErr error

	match    domain.Track
	matchErr error

	topTracks    []domain.RawTrack
	topTracksErr error

	user          domain.User
	userErr       error
	created       map[string]any
	createErr     error
	createdDesc   string
	addedURIs     []string
	addErr        error
	playlists     []map[string]any
	playlistsErr  error
	items         []map[string]any
	itemsErr      error
	itemsTokenArg string
}

func (m *mockSpotify) Search(ctx context.Context, query, searchType string, limit int) (map[string]any, error) {
	m.lastQuery = query
	return m.searchBody, m.searchErr
}

func (m *mockSpotify) SearchTracks(ctx context.Context, query string, limit int) ([]domain.RawTrack, error) {
	m.lastQuery = query
	return m.searchTracks, m.searchTracksErr
}

func (m *mockSpotify) GenreSeeds(ctx context.Context) ([]string, error) {
	return m.genres, m.genresErr
}

func (m *mockSpotify) Recommendations(ctx context.Context, req domain.RecommendationRequest) ([]domain.RawTrack, error) {
	m.lastRecsReq = req
	return m.recs, m.recsErr
}

func (m *mockSpotify) Track(ctx context.Context, id string) (domain.RawTrack, error) {
	if m.trackErr != nil {
		return nil, m.trackErr
	}
	t, ok := m.tracks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockSpotify) AudioFeatures(ctx context.Context, trackID string) (domain.RawAudioFeatures, error) {
	return m.features, m.featuresErr
}

func (m *mockSpotify) MatchTrack(ctx context.Context, title, artist string) (domain.Track, error) {
	return m.match, m.matchErr
}

func (m *mockSpotify) ArtistTopTracks(ctx context.Context, artistID string) ([]domain.RawTrack, error) {
	return m.topTracks, m.topTracksErr
}

func (m *mockSpotify) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	return m.user, m.userErr
}

func (m *mockSpotify) CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (map[string]any, error) {
	m.createdDesc = description
	return m.created, m.createErr
}

func (m *mockSpotify) AddTracksToPlaylist(ctx context.Context, token, playlistID string, uris []string) error {
	m.addedURIs = append(m.addedURIs, uris...)
	return m.addErr
}

func (m *mockSpotify) UserPlaylists(ctx context.Context, token string) ([]map[string]any, error) {
	return m.playlists, m.playlistsErr
}

func (m *mockSpotify) PlaylistItems(ctx context.Context, token, playlistID string) ([]map[string]any, error) {
	m.itemsTokenArg = token
	return m.items, m.itemsErr
}

// mockRepo is an in-memory playlist repository.
type mockRepo struct {
	playlists map[string]domain.Playlist
	saveErr   error
	saved     *domain.Playlist
}

func newMockRepo(pls ...domain.Playlist) *mockRepo {
	r := &mockRepo{playlists: map[string]domain.Playlist{}}
	for _, p := range pls {
		r.playlists[p.ID] = p
	}
	return r
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (domain.Playlist, error) {
	p, ok := m.playlists[id]
	if !ok {
		return domain.Playlist{}, domain.ErrNotFound
	}
	p.Tracks = append([]domain.Track(nil), p.Tracks...)
	return p, nil
}

func (m *mockRepo) List(ctx context.Context) ([]domain.PlaylistSummary, error) {
	out := make([]domain.PlaylistSummary, 0, len(m.playlists))
	for _, p := range m.playlists {
		out = append(out, domain.PlaylistSummary{ID: p.ID, Name: p.Name, Mood: p.Mood, TrackCount: len(p.Tracks)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) Save(ctx context.Context, p domain.Playlist) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &p
	m.playlists[p.ID] = p
	return nil
}

func (m *mockRepo) UpdateTrackFeatures(ctx context.Context, trackID string, features domain.AudioFeatures) error {
	return nil
}

type mockClassifier struct {
	name string
	mood string
	err  error
}

func (m mockClassifier) Name() string { return m.name }

func (m mockClassifier) ClassifyMood(ctx context.Context, text string) (string, error) {
	return m.mood, m.err
}

type mockQueue struct {
	jobs []ports.BackfillJob
	full bool
}

func (m *mockQueue) Submit(job ports.BackfillJob) bool {
	if m.full {
		return false
	}
	m.jobs = append(m.jobs, job)
	return true
}

func rawTrack(id, name, artistID, artistName string) domain.RawTrack {
	return domain.RawTrack{
		"id":            id,
		"name":          name,
		"duration_ms":   float64(185000),
		"external_urls": map[string]any{"spotify": "https://open.spotify.com/track/" + id},
		"artists":       []any{map[string]any{"id": artistID, "name": artistName}},
	}
}
