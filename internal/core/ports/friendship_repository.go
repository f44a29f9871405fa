package ports

import (
	"context"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// FriendshipRepository defines persistence for friendship records.
type FriendshipRepository interface {
	// Create inserts a new record. Returns domain.ErrFriendshipExists when
	// the unique index on the canonical pair rejects the insert — this is
	// what keeps concurrent double-sends down to a single document.
	Create(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error)
	FindByID(ctx context.Context, id string) (*domain.Friendship, error)
	FindByPair(ctx context.Context, pair [2]string) (*domain.Friendship, error)
	// FindByUser returns every friendship containing userID in its pair.
	FindByUser(ctx context.Context, userID string) ([]domain.Friendship, error)
	Update(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error)
	Delete(ctx context.Context, id string) error
}
