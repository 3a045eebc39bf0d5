package domain

import (
	"fmt"
	"strings"
)

// RawTrack is a provider track object kept as decoded JSON so that fields the
// relay does not model are passed to the frontend untouched.
type RawTrack map[string]any

// PlayURLs are the links a frontend uses to play or open a track.
type PlayURLs struct {
	SpotifyWeb string  `json:"spotify_web"`
	SpotifyApp string  `json:"spotify_app"`
	PreviewURL *string `json:"preview_url"`
}

// ID returns the provider id, or "" when absent.
func (t RawTrack) ID() string {
	return stringField(t, "id")
}

// Name returns the track title.
func (t RawTrack) Name() string {
	return stringField(t, "name")
}

// WebURL returns external_urls.spotify.
func (t RawTrack) WebURL() string {
	urls, _ := t["external_urls"].(map[string]any)
	return stringField(urls, "spotify")
}

// PreviewURL returns the 30 second preview link when the provider supplies one.
func (t RawTrack) PreviewURL() *string {
	if s, ok := t["preview_url"].(string); ok && s != "" {
		return &s
	}
	return nil
}

// DurationMs reads duration_ms, which decodes as a JSON number.
func (t RawTrack) DurationMs() int {
	switch v := t["duration_ms"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Artists returns the artist objects in credit order.
func (t RawTrack) Artists() []map[string]any {
	list, _ := t["artists"].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, a := range list {
		if m, ok := a.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// ArtistNames joins artist names with ", ".
func (t RawTrack) ArtistNames() string {
	artists := t.Artists()
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, stringField(a, "name"))
	}
	return strings.Join(names, ", ")
}

// FirstArtistID returns the id of the primary artist, or "".
func (t RawTrack) FirstArtistID() string {
	artists := t.Artists()
	if len(artists) == 0 {
		return ""
	}
	return stringField(artists[0], "id")
}

// PlayURLs derives the play links for the track.
func (t RawTrack) PlayURLs() PlayURLs {
	return PlayURLs{
		SpotifyWeb: t.WebURL(),
		SpotifyApp: TrackURI(t.ID()),
		PreviewURL: t.PreviewURL(),
	}
}

// Enhance adds play_urls and formatted_duration in place and returns the track.
func (t RawTrack) Enhance() RawTrack {
	if len(t) == 0 {
		return t
	}
	t["play_urls"] = t.PlayURLs()
	if ms := t.DurationMs(); ms > 0 {
		t["formatted_duration"] = FormatDuration(ms)
	}
	return t
}

// ToTrack flattens the provider object into a domain Track.
func (t RawTrack) ToTrack() Track {
	album, _ := t["album"].(map[string]any)
	cover := ""
	if images, ok := album["images"].([]any); ok && len(images) > 0 {
		if img, ok := images[0].(map[string]any); ok {
			cover = stringField(img, "url")
		}
	}
	ids, _ := t["external_ids"].(map[string]any)

	track := Track{
		ID:         t.ID(),
		Title:      t.Name(),
		Artist:     t.ArtistNames(),
		Album:      stringField(album, "name"),
		CoverURL:   cover,
		DurationMs: t.DurationMs(),
		ISRC:       stringField(ids, "isrc"),
	}
	if p := t.PreviewURL(); p != nil {
		track.PreviewURL = *p
	}
	return track
}

// EnhanceAll enhances every track of the slice in place.
func EnhanceAll(tracks []RawTrack) []RawTrack {
	for _, t := range tracks {
		t.Enhance()
	}
	return tracks
}

// FormatDuration renders milliseconds as M:SS, truncating partial seconds.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
