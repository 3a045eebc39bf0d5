package ports

import (
	"context"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

type PlaylistRepository interface {
	GetByID(ctx context.Context, id string) (domain.Playlist, error)
	List(ctx context.Context) ([]domain.PlaylistSummary, error)
	Save(ctx context.Context, p domain.Playlist) error
	UpdateTrackFeatures(ctx context.Context, trackID string, features domain.AudioFeatures) error
}
