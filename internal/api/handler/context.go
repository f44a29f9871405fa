package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitflow/habitflow-api/internal/api/middleware"
)

// errorResponse mirrors the error envelope emitted by the central HTTP
// error handler. Referenced by the swagger annotations only.
type errorResponse struct {
	Error string `json:"error"`
}

// ctxUserID extracts the authenticated identity injected by the Auth
// middleware. Its absence means the middleware did not run (or the token
// carried no subject) — reject with 401 before touching any service.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
