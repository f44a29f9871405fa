package ports

import (
	"context"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// HabitRepository defines persistence for habit documents.
type HabitRepository interface {
	Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	FindByID(ctx context.Context, id string) (*domain.Habit, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Habit, error)
	// Update replaces the stored document with the given habit (whole-document
	// write; concurrent writers race last-write-wins).
	Update(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	Delete(ctx context.Context, id string) error
}
