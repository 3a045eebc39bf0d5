package domain

import "fmt"

// AudioFeatures holds the provider's perceptual descriptors for a track.
// All values except Tempo are in the range 0.0 to 1.0.
type AudioFeatures struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Instrumentalness float64 `json:"instrumentalness"`
	Acousticness     float64 `json:"acousticness"`
}

// IsZero reports whether no feature carries a value.
func (f AudioFeatures) IsZero() bool {
	return f == AudioFeatures{}
}

// Track represents a musical track in the domain layer.
type Track struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Artist     string        `json:"artist"`
	Album      string        `json:"album,omitempty"`
	CoverURL   string        `json:"cover_url,omitempty"`
	DurationMs int           `json:"duration_ms"`
	ISRC       string        `json:"isrc,omitempty"` // International Standard Recording Code for matching
	PreviewURL string        `json:"preview_url,omitempty"`
	Features   AudioFeatures `json:"features"`
}

// URI returns the provider URI used when adding the track to a remote playlist.
func (t Track) URI() string {
	return TrackURI(t.ID)
}

// TrackURI builds the app deep link for a track id.
func TrackURI(id string) string {
	return fmt.Sprintf("spotify:track:%s", id)
}
