package ports

import (
	"context"
	"time"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// CreateHabitInput carries the caller-supplied fields for a new habit.
type CreateHabitInput struct {
	Name        string
	Description string
	Color       string
}

// UpdateHabitInput is a partial update: nil fields are left untouched.
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Color       *string
}

// HabitService implements the habit ledger operations. Every operation is
// scoped to the owning user; mutating another user's habit fails with
// domain.ErrForbidden.
type HabitService interface {
	List(ctx context.Context, userID string) ([]domain.Habit, error)
	Create(ctx context.Context, userID string, in CreateHabitInput) (*domain.Habit, error)
	Update(ctx context.Context, userID, habitID string, in UpdateHabitInput) (*domain.Habit, error)
	Delete(ctx context.Context, userID, habitID string) error
	// ToggleCompletion flips the completion entry matching date exactly
	// (full timestamp equality, not calendar day) and returns the updated habit.
	ToggleCompletion(ctx context.Context, userID, habitID string, date time.Time) (*domain.Habit, error)
}
