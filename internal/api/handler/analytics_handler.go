package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// AnalyticsHandler serves the read-only analytics payload.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Get handles GET /analytics.
//
// @Summary      Get habit analytics
// @Description  Summary statistics and chart series derived from the
// @Description  caller's habits. Streak figures are total completion counts,
// @Description  not consecutive-day runs.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AnalyticsReport
// @Failure      401  {object}  errorResponse
// @Router       /analytics [get]
func (h *AnalyticsHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	report, err := h.service.Report(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
