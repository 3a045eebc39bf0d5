package domain

import "errors"

var (
	ErrNotFound            = errors.New("domain: not found")
	ErrDuplicateISRC       = errors.New("domain: duplicate ISRC")
	ErrDuplicateTrack      = errors.New("domain: track already in playlist")
	ErrInvalidMood         = errors.New("domain: unknown mood")
	ErrValidation          = errors.New("domain: invalid argument")
	ErrFeaturesUnavailable = errors.New("domain: audio features unavailable")
	ErrUnauthorized        = errors.New("domain: unauthorized")
	ErrUnavailable         = errors.New("domain: provider unavailable")
)
