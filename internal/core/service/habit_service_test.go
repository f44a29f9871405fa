package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub habit repository + report cache
// ---------------------------------------------------------------------------

type stubHabitRepo struct {
	byID   map[string]*domain.Habit
	nextID int
}

func newStubHabitRepo() *stubHabitRepo {
	return &stubHabitRepo{byID: make(map[string]*domain.Habit)}
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	clone := *h
	clone.Completions = append([]domain.Completion(nil), h.Completions...)
	return &clone
}

func (r *stubHabitRepo) Create(_ context.Context, habit *domain.Habit) (*domain.Habit, error) {
	r.nextID++
	clone := cloneHabit(habit)
	clone.ID = fmt.Sprintf("habit_%d", r.nextID)
	r.byID[clone.ID] = clone
	return cloneHabit(clone), nil
}

func (r *stubHabitRepo) FindByID(_ context.Context, id string) (*domain.Habit, error) {
	h, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(h), nil
}

func (r *stubHabitRepo) FindByUser(_ context.Context, userID string) ([]domain.Habit, error) {
	var out []domain.Habit
	for _, h := range r.byID {
		if h.UserID == userID {
			out = append(out, *cloneHabit(h))
		}
	}
	return out, nil
}

func (r *stubHabitRepo) Update(_ context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if _, ok := r.byID[habit.ID]; !ok {
		return nil, domain.ErrHabitNotFound
	}
	r.byID[habit.ID] = cloneHabit(habit)
	return cloneHabit(habit), nil
}

func (r *stubHabitRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubReportCache struct {
	reports     map[string]*domain.AnalyticsReport
	invalidated int
	getErr      error
	setErr      error
}

func newStubReportCache() *stubReportCache {
	return &stubReportCache{reports: make(map[string]*domain.AnalyticsReport)}
}

func (c *stubReportCache) Get(_ context.Context, userID string) (*domain.AnalyticsReport, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.reports[userID], nil
}

func (c *stubReportCache) Set(_ context.Context, userID string, report *domain.AnalyticsReport) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.reports[userID] = report
	return nil
}

func (c *stubReportCache) Invalidate(_ context.Context, userID string) error {
	c.invalidated++
	delete(c.reports, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHabitService_Create_Defaults(t *testing.T) {
	repo := newStubHabitRepo()
	svc := NewHabitService(repo, nil, zerolog.Nop())

	habit, err := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "  Read  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if habit.Name != "Read" {
		t.Fatalf("name not trimmed: %q", habit.Name)
	}
	if habit.Color != domain.DefaultHabitColor {
		t.Fatalf("expected default color, got %q", habit.Color)
	}
	if len(habit.Completions) != 0 {
		t.Fatalf("expected no completions, got %v", habit.Completions)
	}
}

func TestHabitService_Create_NameRequired(t *testing.T) {
	svc := NewHabitService(newStubHabitRepo(), nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "   "}); err != domain.ErrHabitNameRequired {
		t.Fatalf("expected ErrHabitNameRequired, got %v", err)
	}
}

func TestHabitService_Update_Partial(t *testing.T) {
	repo := newStubHabitRepo()
	svc := NewHabitService(repo, nil, zerolog.Nop())

	habit, err := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{
		Name:        "Read",
		Description: "20 pages",
		Color:       "#ff0000",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Read more"
	updated, err := svc.Update(context.Background(), "user_1", habit.ID, ports.UpdateHabitInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Read more" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Description != "20 pages" || updated.Color != "#ff0000" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestHabitService_Update_EmptyNameRejected(t *testing.T) {
	repo := newStubHabitRepo()
	svc := NewHabitService(repo, nil, zerolog.Nop())

	habit, _ := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "Read"})

	empty := "  "
	if _, err := svc.Update(context.Background(), "user_1", habit.ID, ports.UpdateHabitInput{Name: &empty}); err != domain.ErrHabitNameRequired {
		t.Fatalf("expected ErrHabitNameRequired, got %v", err)
	}
}

func TestHabitService_OwnershipEnforced(t *testing.T) {
	repo := newStubHabitRepo()
	svc := NewHabitService(repo, nil, zerolog.Nop())

	habit, _ := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "Read"})

	if _, err := svc.Update(context.Background(), "user_2", habit.ID, ports.UpdateHabitInput{}); err != domain.ErrForbidden {
		t.Fatalf("update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_2", habit.ID); err != domain.ErrForbidden {
		t.Fatalf("delete: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ToggleCompletion(context.Background(), "user_2", habit.ID, time.Now()); err != domain.ErrForbidden {
		t.Fatalf("toggle: expected ErrForbidden, got %v", err)
	}
}

func TestHabitService_ToggleCompletion_SelfInverse(t *testing.T) {
	repo := newStubHabitRepo()
	svc := NewHabitService(repo, nil, zerolog.Nop())

	habit, _ := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "Read"})
	at := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	after, err := svc.ToggleCompletion(context.Background(), "user_1", habit.ID, at)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(after.Completions) != 1 || !after.Completions[0].Date.Equal(at) {
		t.Fatalf("expected one completion at %v, got %v", at, after.Completions)
	}

	after, err = svc.ToggleCompletion(context.Background(), "user_1", habit.ID, at)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if len(after.Completions) != 0 {
		t.Fatalf("expected completion removed, got %v", after.Completions)
	}
}

func TestHabitService_ToggleCompletion_ExactTimestampOnly(t *testing.T) {
	repo := newStubHabitRepo()
	svc := NewHabitService(repo, nil, zerolog.Nop())

	habit, _ := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "Read"})
	midnight := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if _, err := svc.ToggleCompletion(context.Background(), "user_1", habit.ID, midnight); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	after, err := svc.ToggleCompletion(context.Background(), "user_1", habit.ID, noon)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// Same calendar day, different instant: both entries coexist.
	if len(after.Completions) != 2 {
		t.Fatalf("expected 2 completions, got %d", len(after.Completions))
	}
}

func TestHabitService_Delete_NotFound(t *testing.T) {
	svc := NewHabitService(newStubHabitRepo(), nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), "user_1", "habit_404"); err != domain.ErrHabitNotFound {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestHabitService_MutationsInvalidateCache(t *testing.T) {
	repo := newStubHabitRepo()
	cache := newStubReportCache()
	svc := NewHabitService(repo, cache, zerolog.Nop())

	habit, err := svc.Create(context.Background(), "user_1", ports.CreateHabitInput{Name: "Read"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ToggleCompletion(context.Background(), "user_1", habit.ID, time.Now()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", habit.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if cache.invalidated != 3 {
		t.Fatalf("expected 3 invalidations, got %d", cache.invalidated)
	}
}
