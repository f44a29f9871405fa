package domain

import (
	"errors"
	"time"
)

// DefaultHabitColor is applied when a habit is created without a color tag.
const DefaultHabitColor = "#3b82f6"

var ErrHabitNotFound = errors.New("habit not found")
var ErrHabitNameRequired = errors.New("habit name is required")
var ErrForbidden = errors.New("not authorized")

// Completion records a single moment a habit was marked done.
type Completion struct {
	Date time.Time `json:"date"`
}

// Habit is a user-owned habit definition plus its completion history.
// Completions behave as a set keyed by the exact timestamp value, not by
// calendar day: callers that want day-level toggling must normalize the
// date to midnight before calling ToggleCompletion.
type Habit struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Color       string       `json:"color"`
	Completions []Completion `json:"completions"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ToggleCompletion flips the completion entry for the given instant.
// Equality is exact (full timestamp). Returns true when the entry was
// added, false when an existing entry was removed. Calling it twice with
// the identical value leaves the habit unchanged.
func (h *Habit) ToggleCompletion(at time.Time) bool {
	for i, c := range h.Completions {
		if c.Date.Equal(at) {
			h.Completions = append(h.Completions[:i], h.Completions[i+1:]...)
			return false
		}
	}
	h.Completions = append(h.Completions, Completion{Date: at})
	return true
}

// CompletionCount returns the number of recorded completions.
func (h *Habit) CompletionCount() int {
	return len(h.Completions)
}

// CompletionsBetween counts completion entries within [from, to] inclusive.
func (h *Habit) CompletionsBetween(from, to time.Time) int {
	n := 0
	for _, c := range h.Completions {
		if !c.Date.Before(from) && !c.Date.After(to) {
			n++
		}
	}
	return n
}
