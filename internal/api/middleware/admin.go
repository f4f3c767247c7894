package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// RequireAdmin lets only administrators through. It must run after Auth.
func RequireAdmin(checker ports.AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := UserID(c)
			if id == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized."})
			}
			ok, err := checker.IsAdmin(c.Request().Context(), id)
			if err != nil || !ok {
				return c.JSON(http.StatusForbidden, map[string]any{"success": false, "message": "Access denied. Admins only."})
			}
			return next(c)
		}
	}
}
