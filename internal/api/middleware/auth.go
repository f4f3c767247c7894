package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/pkg/session"
)

const (
	// LoginView is the template rendered for unauthenticated page requests.
	LoginView = "login"

	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// IsAPIRequest reports whether the request targets the JSON API.
func IsAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// Auth validates the session cookie and injects the caller's id and email
// into the context. API requests get 401 without a cookie and 403 with a bad
// one; page requests get the login view in both cases.
func Auth(secret string, now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(session.CookieName); err == nil {
				token = cookie.Value
			}

			id, err := session.Parse(token, secret, now())
			if err != nil {
				return reject(c, err)
			}

			c.Set(ctxUserID, id.ID)
			c.Set(ctxEmail, id.Email)
			return next(c)
		}
	}
}

func reject(c echo.Context, err error) error {
	if !IsAPIRequest(c) {
		msg := "Please sign in to continue."
		if errors.Is(err, session.ErrTokenInvalid) {
			msg = "Your session has expired. Please sign in again."
		}
		return c.Render(http.StatusOK, LoginView, map[string]any{"Error": msg})
	}

	if errors.Is(err, session.ErrTokenMissing) {
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized: no token provided."})
	}
	return c.JSON(http.StatusForbidden, map[string]any{"success": false, "message": "Forbidden: invalid or expired token."})
}

// UserID returns the id set by Auth.
func UserID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

// Email returns the email set by Auth.
func Email(c echo.Context) string {
	email, _ := c.Get(ctxEmail).(string)
	return email
}
