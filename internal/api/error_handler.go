package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// domainErrors maps sentinel errors to their status and client message.
var domainErrors = []struct {
	err  error
	code int
	msg  string
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
	{domain.ErrNotVerified, http.StatusForbidden, "Please verify your email first."},
	{domain.ErrAccountBlocked, http.StatusForbidden, "Your account has been blocked."},
	{domain.ErrForbidden, http.StatusForbidden, "Not authorized to perform this action."},
	{domain.ErrInvalidToken, http.StatusBadRequest, "Invalid or expired token."},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found."},
	{domain.ErrConnectionNotFound, http.StatusNotFound, "Connection request not found."},
	{domain.ErrConversationNotFound, http.StatusNotFound, "Conversation not found."},
	{domain.ErrPostNotFound, http.StatusNotFound, "Post not found."},
	{domain.ErrCommentNotFound, http.StatusNotFound, "Comment not found."},
	{domain.ErrJobNotFound, http.StatusNotFound, "Job not found."},
	{domain.ErrUserExists, http.StatusConflict, "User already exists."},
	{domain.ErrConnectionExists, http.StatusConflict, "Connection request already exists."},
	{domain.ErrSelfConnection, http.StatusBadRequest, "You cannot connect with yourself."},
	{domain.ErrSelfConversation, http.StatusBadRequest, "You cannot message yourself."},
	{domain.ErrOwnJob, http.StatusBadRequest, "Cannot apply to own job."},
	{domain.ErrAlreadyApplied, http.StatusBadRequest, "Already applied."},
	{domain.ErrMailDelivery, http.StatusInternalServerError, "Could not send verification email. Please try again later."},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Msg
	}

	if errors.Is(err, domain.ErrInvalidUpload) || errors.Is(err, domain.ErrUploadTooLarge) {
		return http.StatusBadRequest, uploadMessage(err)
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			if de.code >= http.StatusInternalServerError {
				logUnhandled(log, c, err)
			}
			return de.code, de.msg
		}
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, "Server error."
}

// uploadMessage keeps the detail after the sentinel text, which storage
// writes for the client.
func uploadMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return "Upload error: " + msg
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
