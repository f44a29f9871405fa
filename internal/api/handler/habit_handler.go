package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitflow/habitflow-api/internal/api/metrics"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// HabitHandler handles HTTP requests for the habit ledger.
type HabitHandler struct {
	service ports.HabitService
}

func NewHabitHandler(service ports.HabitService) *HabitHandler {
	return &HabitHandler{service: service}
}

// List handles GET /habits.
//
// @Summary      List the caller's habits
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Habit
// @Failure      401  {object}  errorResponse
// @Router       /habits [get]
func (h *HabitHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	habits, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, habits)
}

// Create handles POST /habits.
//
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHabitRequest  true  "Habit definition"
// @Success      201   {object}  domain.Habit
// @Failure      400   {object}  errorResponse
// @Router       /habits [post]
func (h *HabitHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	habit, err := h.service.Create(c.Request().Context(), userID, ports.CreateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}

	metrics.HabitsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, habit)
}

// Update handles PUT /habits/:id.
//
// @Summary      Update a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Habit ID"
// @Param        body  body      updateHabitRequest  true  "Fields to change"
// @Success      200   {object}  domain.Habit
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	habit, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, habit)
}

// Delete handles DELETE /habits/:id.
//
// @Summary      Delete a habit
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Habit ID"
// @Success      200  {object}  deletedResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Success: true, Data: map[string]any{}})
}

// ToggleCompletion handles POST /habits/:id/toggle-completion.
//
// @Summary      Toggle a completion entry
// @Description  Flips the completion entry matching the given date by exact
// @Description  timestamp equality. Send midnight-normalized dates for
// @Description  day-granularity toggling.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Habit ID"
// @Param        body  body      toggleCompletionRequest  true  "Completion instant"
// @Success      200   {object}  domain.Habit
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id}/toggle-completion [post]
func (h *HabitHandler) ToggleCompletion(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req toggleCompletionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	habit, err := h.service.ToggleCompletion(c.Request().Context(), userID, c.Param("id"), req.Date)
	if err != nil {
		return err
	}

	// The returned document reflects the toggle: the date's presence tells
	// us which way it went.
	action := "uncompleted"
	for _, comp := range habit.Completions {
		if comp.Date.Equal(req.Date) {
			action = "completed"
			break
		}
	}
	metrics.CompletionTogglesTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, habit)
}
