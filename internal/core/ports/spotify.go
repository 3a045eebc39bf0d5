package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// ErrNoConfidentMatch indicates search results did not meet the confidence threshold.
var ErrNoConfidentMatch = errors.New("no confident match")

// NoConfidentMatchError provides context for a failed track match.
type NoConfidentMatchError struct {
	Title  string
	Artist string
}

func (e NoConfidentMatchError) Error() string {
	if e.Title == "" && e.Artist == "" {
		return ErrNoConfidentMatch.Error()
	}
	return fmt.Sprintf("no confident match found for title %q artist %q", e.Title, e.Artist)
}

func (e NoConfidentMatchError) Is(target error) bool {
	return target == ErrNoConfidentMatch
}

// CatalogProvider covers the provider calls made with the application's own
// client-credentials token.
type CatalogProvider interface {
	Search(ctx context.Context, query, searchType string, limit int) (map[string]any, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.RawTrack, error)
	GenreSeeds(ctx context.Context) ([]string, error)
	Recommendations(ctx context.Context, req domain.RecommendationRequest) ([]domain.RawTrack, error)
	Track(ctx context.Context, id string) (domain.RawTrack, error)
	AudioFeatures(ctx context.Context, trackID string) (domain.RawAudioFeatures, error)
	MatchTrack(ctx context.Context, title, artist string) (domain.Track, error)
	ArtistTopTracks(ctx context.Context, artistID string) ([]domain.RawTrack, error)
}

// LibraryProvider covers calls made on behalf of a user. An empty token falls
// back to the application token where the provider allows it.
type LibraryProvider interface {
	CurrentUser(ctx context.Context, token string) (domain.User, error)
	CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (map[string]any, error)
	AddTracksToPlaylist(ctx context.Context, token, playlistID string, uris []string) error
	UserPlaylists(ctx context.Context, token string) ([]map[string]any, error)
	PlaylistItems(ctx context.Context, token, playlistID string) ([]map[string]any, error)
}

// SpotifyProvider is everything the relay needs from the music provider.
type SpotifyProvider interface {
	CatalogProvider
	LibraryProvider
}
