package handler

import "time"

type createHabitRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

// updateHabitRequest is a partial update: absent fields stay untouched.
type updateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

// toggleCompletionRequest carries the completion instant. Matching is by
// exact timestamp, not calendar day: clients toggling "today" must send the
// date normalized to midnight, or the second toggle will not find the first.
type toggleCompletionRequest struct {
	Date time.Time `json:"date" validate:"required"`
}

// deletedResponse mirrors the empty-object acknowledgement the dashboard
// expects after a delete.
type deletedResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}
