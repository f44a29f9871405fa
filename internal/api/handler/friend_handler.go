package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitflow/habitflow-api/internal/api/metrics"
	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// FriendHandler handles HTTP requests for the friendship state machine.
type FriendHandler struct {
	service ports.FriendService
}

func NewFriendHandler(service ports.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

type sendRequestRequest struct {
	RecipientID string `json:"recipientId" validate:"required,len=24,hexadecimal"`
}

type respondRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type removedResponse struct {
	Message string `json:"message"`
}

// Search handles GET /friends/search?q=.
//
// @Summary      Search users by display name
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "Substring to match, case-insensitive"
// @Success      200  {array}   domain.PublicProfile
// @Failure      400  {object}  errorResponse
// @Router       /friends/search [get]
func (h *FriendHandler) Search(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	users, err := h.service.Search(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SendRequest handles POST /friends/request. A revived declined friendship
// answers 200; a brand-new pending one answers 201.
//
// @Summary      Send a friend request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendRequestRequest  true  "Recipient"
// @Success      200   {object}  domain.Friendship  "revived previously declined request"
// @Success      201   {object}  domain.Friendship
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /friends/request [post]
func (h *FriendHandler) SendRequest(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req sendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.SendRequest(c.Request().Context(), userID, req.RecipientID)
	if err != nil {
		if err == domain.ErrFriendshipExists {
			metrics.FriendRequestsTotal.WithLabelValues("conflict").Inc()
		}
		return err
	}

	if result.Created {
		metrics.FriendRequestsTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, result.Friendship)
	}
	metrics.FriendRequestsTotal.WithLabelValues("revived").Inc()
	return c.JSON(http.StatusOK, result.Friendship)
}

// Respond handles PUT /friends/request/:id.
//
// @Summary      Accept or decline a friend request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Friendship ID"
// @Param        body  body      respondRequest  true  "accepted or declined"
// @Success      200   {object}  domain.Friendship
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /friends/request/{id} [put]
func (h *FriendHandler) Respond(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	friendship, err := h.service.Respond(c.Request().Context(), userID, c.Param("id"), domain.FriendshipStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.FriendResponsesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, friendship)
}

// List handles GET /friends.
//
// @Summary      List friends and pending requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.FriendList
// @Failure      401  {object}  errorResponse
// @Router       /friends [get]
func (h *FriendHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Remove handles DELETE /friends/:id.
//
// @Summary      Cancel a request or unfriend
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Friendship ID"
// @Success      200  {object}  removedResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /friends/{id} [delete]
func (h *FriendHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, removedResponse{Message: "friendship removed"})
}
