package domain

import (
	"strings"
	"time"
)

// Playlist is a locally stored draft that can later be published to the
// provider.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mood      string    `json:"mood"`
	Tracks    []Track   `json:"tracks"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaylistSummary is the listing view of a draft.
type PlaylistSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Mood       string `json:"mood"`
	TrackCount int    `json:"track_count"`
}

// NewPlaylist validates the arguments and returns an empty draft.
func NewPlaylist(id, name, mood string) (*Playlist, error) {
	if id == "" || strings.TrimSpace(name) == "" {
		return nil, ErrValidation
	}
	profile, err := LookupMood(mood)
	if err != nil {
		return nil, err
	}
	return &Playlist{
		ID:     id,
		Name:   strings.TrimSpace(name),
		Mood:   profile.Name,
		Tracks: []Track{},
	}, nil
}

// AddTrack appends a track to the playlist while preventing duplicates.
// A track id already in the playlist returns ErrDuplicateTrack. If the
// incoming track has a non-empty ISRC and that ISRC already exists in the
// playlist, AddTrack returns ErrDuplicateISRC.
func (p *Playlist) AddTrack(t Track) error {
	for _, ex := range p.Tracks {
		if ex.ID == t.ID {
			return ErrDuplicateTrack
		}
		if t.ISRC != "" && ex.ISRC == t.ISRC {
			return ErrDuplicateISRC
		}
	}
	p.Tracks = append(p.Tracks, t)
	return nil
}

// RemoveTrack drops the track with the given id, keeping the order of the rest.
func (p *Playlist) RemoveTrack(trackID string) error {
	for i, t := range p.Tracks {
		if t.ID == trackID {
			p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// TrackURIs lists the provider URIs of all tracks in order.
func (p Playlist) TrackURIs() []string {
	uris := make([]string, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		uris = append(uris, t.URI())
	}
	return uris
}

// Analyze averages the audio features of all tracks. An empty playlist yields
// zero values.
func (p Playlist) Analyze() AudioFeatures {
	if len(p.Tracks) == 0 {
		return AudioFeatures{}
	}

	var sum AudioFeatures
	for _, t := range p.Tracks {
		sum.Danceability += t.Features.Danceability
		sum.Energy += t.Features.Energy
		sum.Valence += t.Features.Valence
		sum.Tempo += t.Features.Tempo
		sum.Instrumentalness += t.Features.Instrumentalness
		sum.Acousticness += t.Features.Acousticness
	}

	n := float64(len(p.Tracks))
	return AudioFeatures{
		Danceability:     sum.Danceability / n,
		Energy:           sum.Energy / n,
		Valence:          sum.Valence / n,
		Tempo:            sum.Tempo / n,
		Instrumentalness: sum.Instrumentalness / n,
		Acousticness:     sum.Acousticness / n,
	}
}
