package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/api/middleware"
)

// ctxIdentity returns the caller id injected by the Auth middleware and fails
// fast when the route was registered without it.
func ctxIdentity(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: no token provided.")
	}
	return id, nil
}
