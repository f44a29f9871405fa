package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/habitflow/habitflow-api/internal/api/middleware"
	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

type stubHabitService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Habit, error)
	createFn func(ctx context.Context, userID string, in ports.CreateHabitInput) (*domain.Habit, error)
	updateFn func(ctx context.Context, userID, habitID string, in ports.UpdateHabitInput) (*domain.Habit, error)
	deleteFn func(ctx context.Context, userID, habitID string) error
	toggleFn func(ctx context.Context, userID, habitID string, date time.Time) (*domain.Habit, error)
}

func (s *stubHabitService) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	return s.listFn(ctx, userID)
}

func (s *stubHabitService) Create(ctx context.Context, userID string, in ports.CreateHabitInput) (*domain.Habit, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubHabitService) Update(ctx context.Context, userID, habitID string, in ports.UpdateHabitInput) (*domain.Habit, error) {
	return s.updateFn(ctx, userID, habitID, in)
}

func (s *stubHabitService) Delete(ctx context.Context, userID, habitID string) error {
	return s.deleteFn(ctx, userID, habitID)
}

func (s *stubHabitService) ToggleCompletion(ctx context.Context, userID, habitID string, date time.Time) (*domain.Habit, error) {
	return s.toggleFn(ctx, userID, habitID, date)
}

func TestHabitHandler_Create_Success(t *testing.T) {
	stub := &stubHabitService{
		createFn: func(ctx context.Context, userID string, in ports.CreateHabitInput) (*domain.Habit, error) {
			if userID != "user_1" || in.Name != "Read" || in.Color != "#ff0000" {
				t.Fatalf("unexpected args: %s %+v", userID, in)
			}
			return &domain.Habit{ID: "habit_1", UserID: userID, Name: in.Name, Color: in.Color}, nil
		},
	}
	h := NewHabitHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/habits",
		`{"name":"Read","color":"#ff0000"}`)
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHabitHandler_Create_InvalidColor(t *testing.T) {
	stub := &stubHabitService{
		createFn: func(ctx context.Context, userID string, in ports.CreateHabitInput) (*domain.Habit, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewHabitHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/habits", `{"name":"Read","color":"red"}`)
	c.Set(middleware.UserIDKey, "user_1")

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHabitHandler_Update_PartialBody(t *testing.T) {
	stub := &stubHabitService{
		updateFn: func(ctx context.Context, userID, habitID string, in ports.UpdateHabitInput) (*domain.Habit, error) {
			if in.Name == nil || *in.Name != "Read more" {
				t.Fatalf("name not bound: %v", in.Name)
			}
			if in.Description != nil || in.Color != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			return &domain.Habit{ID: habitID, UserID: userID, Name: *in.Name}, nil
		},
	}
	h := NewHabitHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/habits/habit_1", `{"name":"Read more"}`)
	c.SetParamNames("id")
	c.SetParamValues("habit_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHabitHandler_Delete_Envelope(t *testing.T) {
	stub := &stubHabitService{
		deleteFn: func(ctx context.Context, userID, habitID string) error {
			return nil
		},
	}
	h := NewHabitHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/habits/habit_1", "")
	c.SetParamNames("id")
	c.SetParamValues("habit_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("unexpected envelope: %v", resp)
	}
}

func TestHabitHandler_ToggleCompletion(t *testing.T) {
	at := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stub := &stubHabitService{
		toggleFn: func(ctx context.Context, userID, habitID string, date time.Time) (*domain.Habit, error) {
			if !date.Equal(at) {
				t.Fatalf("date not bound: %v", date)
			}
			return &domain.Habit{
				ID:          habitID,
				UserID:      userID,
				Name:        "Read",
				Completions: []domain.Completion{{Date: date}},
			}, nil
		},
	}
	h := NewHabitHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/habits/habit_1/toggle-completion",
		`{"date":"2026-03-14T00:00:00Z"}`)
	c.SetParamNames("id")
	c.SetParamValues("habit_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.ToggleCompletion(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHabitHandler_ToggleCompletion_MissingDate(t *testing.T) {
	stub := &stubHabitService{
		toggleFn: func(ctx context.Context, userID, habitID string, date time.Time) (*domain.Habit, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewHabitHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/habits/habit_1/toggle-completion", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("habit_1")
	c.Set(middleware.UserIDKey, "user_1")

	err := h.ToggleCompletion(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHabitHandler_PropagatesForbidden(t *testing.T) {
	stub := &stubHabitService{
		deleteFn: func(ctx context.Context, userID, habitID string) error {
			return domain.ErrForbidden
		},
	}
	h := NewHabitHandler(stub)

	c, _ := newTestContext(http.MethodDelete, "/habits/habit_1", "")
	c.SetParamNames("id")
	c.SetParamValues("habit_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
