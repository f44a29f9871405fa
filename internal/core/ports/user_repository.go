package ports

import (
	"context"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// UserRepository defines persistence for account records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile overwrites displayName and bio and returns the updated record.
	UpdateProfile(ctx context.Context, id, displayName, bio string) (*domain.User, error)
	// UpdateAvatar persists the avatar reference URI and returns the updated record.
	UpdateAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error)
	// SearchByDisplayName returns up to limit users whose display name
	// case-insensitively contains query, excluding excludeID.
	SearchByDisplayName(ctx context.Context, query, excludeID string, limit int) ([]domain.PublicProfile, error)
}
