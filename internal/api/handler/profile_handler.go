package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitflow/habitflow-api/internal/api/metrics"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// ProfileHandler handles profile reads, updates, and avatar uploads.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
	Bio         string `json:"bio"`
}

// Get handles GET /profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetPublic handles GET /profile/:userId — another user's public page.
//
// @Summary      Get a user's public profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  ports.PublicProfileResult
// @Failure      404     {object}  errorResponse
// @Router       /profile/{userId} [get]
func (h *ProfileHandler) GetPublic(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	result, err := h.service.GetPublic(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Update handles PUT /profile.
//
// @Summary      Update display name and bio
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), userID, req.DisplayName, req.Bio)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar handles PUT /profile/avatar (multipart, field "avatar").
//
// @Summary      Upload a new avatar
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Image file (jpeg/png/webp, max 5 MiB)"
// @Success      200     {object}  domain.User
// @Failure      400     {object}  errorResponse
// @Failure      503     {object}  errorResponse
// @Router       /profile/avatar [put]
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a file")
	}

	user, err := h.service.UpdateAvatar(c.Request().Context(), userID, file)
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.AvatarUploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, user)
}
