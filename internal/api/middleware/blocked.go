package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
	"github.com/yesser147/linkedinSocialMedia/internal/pkg/session"
)

const blockedMessage = "Your account has been blocked."

// RejectBlocked ends the session of blocked or deleted accounts. It must run after Auth.
func RejectBlocked(checker ports.BlockChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := UserID(c)
			if id == "" {
				return reject(c, session.ErrTokenMissing)
			}

			blocked, err := checker.IsBlocked(c.Request().Context(), id)
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				return reject(c, session.ErrTokenInvalid)
			case err != nil:
				return err
			case !blocked:
				return next(c)
			}

			c.SetCookie(&http.Cookie{Name: session.CookieName, Path: "/", MaxAge: -1, HttpOnly: true})
			if !IsAPIRequest(c) {
				return c.Render(http.StatusOK, LoginView, map[string]any{"Error": blockedMessage})
			}
			return c.JSON(http.StatusForbidden, map[string]any{"success": false, "message": blockedMessage})
		}
	}
}
