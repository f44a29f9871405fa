package ports

import (
	"context"
	"mime/multipart"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// PublicProfileResult is a public profile page: the user's visible fields
// plus their habits.
type PublicProfileResult struct {
	User   domain.PublicProfile `json:"user"`
	Habits []domain.Habit       `json:"habits"`
}

// ProfileService implements profile reads and updates, including the
// avatar upload delegation to the external image host.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetPublic(ctx context.Context, userID string) (*PublicProfileResult, error)
	Update(ctx context.Context, userID, displayName, bio string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error)
}
