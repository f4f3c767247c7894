package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// messageResponse is the envelope shared by every API response.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok(msg string) messageResponse {
	return messageResponse{Success: true, Message: msg}
}

// bindAndValidate decodes the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("Invalid request payload.")
	}
	return c.Validate(req)
}

// wantsJSON reports whether a form endpoint was called by a script rather
// than a browser form post.
func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}
