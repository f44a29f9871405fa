package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// HabitService implements the habit ledger. All mutations invalidate the
// owner's cached analytics report.
type HabitService struct {
	repo   ports.HabitRepository
	cache  ReportCache
	logger zerolog.Logger
}

func NewHabitService(repo ports.HabitRepository, cache ReportCache, logger zerolog.Logger) *HabitService {
	return &HabitService{repo: repo, cache: cache, logger: logger}
}

func (s *HabitService) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *HabitService) Create(ctx context.Context, userID string, in ports.CreateHabitInput) (*domain.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrHabitNameRequired
	}

	color := in.Color
	if color == "" {
		color = domain.DefaultHabitColor
	}

	habit := &domain.Habit{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       color,
		Completions: []domain.Completion{},
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, habit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create habit")
		return nil, err
	}

	s.invalidate(ctx, userID)
	return created, nil
}

func (s *HabitService) Update(ctx context.Context, userID, habitID string, in ports.UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrHabitNameRequired
		}
		habit.Name = name
	}
	if in.Description != nil {
		habit.Description = strings.TrimSpace(*in.Description)
	}
	if in.Color != nil && *in.Color != "" {
		habit.Color = *in.Color
	}

	updated, err := s.repo.Update(ctx, habit)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return updated, nil
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, habitID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// ToggleCompletion flips the entry matching date by exact timestamp
// equality. The read-modify-write has no optimistic-concurrency check:
// two concurrent toggles on the same habit race last-write-wins.
func (s *HabitService) ToggleCompletion(ctx context.Context, userID, habitID string, date time.Time) (*domain.Habit, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	added := habit.ToggleCompletion(date)

	updated, err := s.repo.Update(ctx, habit)
	if err != nil {
		return nil, err
	}

	action := "uncompleted"
	if added {
		action = "completed"
	}
	s.logger.Debug().
		Str("habit_id", habitID).
		Str("action", action).
		Time("date", date).
		Msg("completion toggled")

	s.invalidate(ctx, userID)
	return updated, nil
}

// ownedHabit loads a habit and enforces ownership.
func (s *HabitService) ownedHabit(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	habit, err := s.repo.FindByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return habit, nil
}

func (s *HabitService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate analytics cache")
	}
}
