package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/api/metrics"
	"github.com/yesser147/linkedinSocialMedia/internal/api/view"
	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
	"github.com/yesser147/linkedinSocialMedia/internal/pkg/session"
)

const (
	dateOfBirthLayout = "2006-01-02"
	forgotAck         = "If that email exists, a reset link has been sent."
)

type AuthHandler struct {
	authService  ports.AuthService
	ttl          time.Duration
	secureCookie bool
	log          zerolog.Logger
}

// NewAuthHandler builds the account handlers. Cookies live for ttl and carry
// the Secure flag when secure is set.
func NewAuthHandler(authService ports.AuthService, ttl time.Duration, secure bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, ttl: ttl, secureCookie: secure, log: log}
}

type signupRequest struct {
	Username    string `form:"username"    json:"username"    validate:"required"`
	Email       string `form:"email"       json:"email"       validate:"required,email"`
	Gender      string `form:"gender"      json:"gender"      validate:"required"`
	Password    string `form:"password"    json:"password"    validate:"required"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Location    string `form:"location"    json:"location"`
	Bio         string `form:"bio"         json:"bio"`
	Description string `form:"description" json:"description"`
}

type signupResponse struct {
	messageResponse
	ProfilePicture string `json:"profilePicture"`
}

type signinRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type signinResponse struct {
	messageResponse
	User domain.UserSummary `json:"user"`
}

type forgotPasswordRequest struct {
	Email string `form:"email" json:"email"`
}

type resetPasswordRequest struct {
	Password        string `form:"password"        json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

// Signup registers an unverified account and mails the verification link.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       mpfd,x-www-form-urlencoded,json
// @Produce      json
// @Param        username        formData  string  true   "Unique username"
// @Param        email           formData  string  true   "Unique email"
// @Param        gender          formData  string  true   "Gender"
// @Param        password        formData  string  true   "Password"
// @Param        dateOfBirth     formData  string  true   "Date of birth (YYYY-MM-DD)"
// @Param        location        formData  string  false  "Location"
// @Param        bio             formData  string  false  "Short bio"
// @Param        profilePicture  formData  file    false  "Profile picture (jpeg, png, gif, webp; 5MB)"
// @Success      201             {object}  signupResponse
// @Failure      400             {object}  messageResponse
// @Failure      409             {object}  messageResponse
// @Failure      500             {object}  messageResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	picture, closeFile, err := formFile(c, "profilePicture")
	if err != nil {
		return err
	}
	defer closeFile()

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload.")
	}
	if strings.TrimSpace(req.Username) == "" || req.Email == "" || req.Password == "" || req.Gender == "" || req.DateOfBirth == "" {
		return domain.Invalid("All required fields must be provided.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	dob, _ := time.Parse(dateOfBirthLayout, req.DateOfBirth)

	bio := req.Bio
	if bio == "" {
		bio = req.Description
	}

	res, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username:    strings.TrimSpace(req.Username),
		Email:       req.Email,
		Gender:      req.Gender,
		Password:    req.Password,
		DateOfBirth: dob,
		Location:    req.Location,
		Bio:         bio,
		Picture:     picture,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.SignupsTotal.WithLabelValues("created").Inc()
	if picture != nil {
		metrics.UploadsTotal.WithLabelValues(string(domain.UploadProfilePicture)).Inc()
	}

	return c.JSON(http.StatusCreated, signupResponse{
		messageResponse: ok("Signup successful. Please verify your email."),
		ProfilePicture:  res.ProfilePicture,
	})
}

// Signin checks credentials and sets the session cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse  "JSON clients"
// @Success      303   "Browser clients are redirected to /"
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues(signinResult(err)).Inc()
		return err
	}
	metrics.SigninsTotal.WithLabelValues("ok").Inc()

	c.SetCookie(h.cookie(token, int(h.ttl.Seconds())))
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, signinResponse{messageResponse: ok("Signed in."), User: user.Summary()})
	}
	return redirectHome(c)
}

func signinResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrNotVerified):
		return "unverified"
	case errors.Is(err, domain.ErrAccountBlocked):
		return "blocked"
	}
	return "error"
}

// Logout clears the session cookie.
//
// @Summary      Log out
// @Tags         auth
// @Success      303  "Redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie("", -1))
	return redirectHome(c)
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// Verify consumes a verification token and renders the outcome.
//
// @Summary      Verify email
// @Tags         auth
// @Produce      html
// @Param        token  path  string  true  "Verification token"
// @Success      200
// @Router       /verify/{token} [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	if err := h.authService.Verify(c.Request().Context(), c.Param("token")); err != nil {
		if !errors.Is(err, domain.ErrInvalidToken) {
			h.log.Error().Err(err).Msg("verify email")
		}
		return c.Render(http.StatusOK, view.VerifyFailure, view.Page{})
	}
	return c.Render(http.StatusOK, view.VerifySuccess, view.Page{})
}

// ForgotPasswordForm renders the reset request form.
func (h *AuthHandler) ForgotPasswordForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.ForgotPassword, view.Page{})
}

// ForgotPassword always answers with the same acknowledgment.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email  formData  string  true  "Account email"
// @Success      200
// @Failure      400
// @Router       /password/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.Render(http.StatusBadRequest, view.ForgotPassword, view.Page{Error: "Please provide your email."})
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), strings.TrimSpace(req.Email)); err != nil {
		h.log.Error().Err(err).Msg("forgot password")
		return c.Render(http.StatusInternalServerError, view.ForgotPassword, view.Page{Error: "Server error."})
	}
	return c.Render(http.StatusOK, view.ForgotPassword, view.Page{Message: forgotAck})
}

// ResetPasswordForm shows the new-password form for a live token.
//
// @Summary      Password reset form
// @Tags         auth
// @Produce      html
// @Param        token  path  string  true  "Reset token"
// @Success      200
// @Failure      400
// @Router       /password/reset/{token} [get]
func (h *AuthHandler) ResetPasswordForm(c echo.Context) error {
	token := c.Param("token")
	if err := h.authService.CheckResetToken(c.Request().Context(), token); err != nil {
		return h.renderResetError(c, token, err)
	}
	return c.Render(http.StatusOK, view.ResetPassword, view.Page{Token: token})
}

// ResetPassword sets a new password and burns the token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        token            path      string  true  "Reset token"
// @Param        password         formData  string  true  "New password"
// @Param        confirmPassword  formData  string  true  "New password again"
// @Success      200
// @Failure      400
// @Router       /password/reset/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, view.ResetPassword, view.Page{Token: token, Error: "Invalid request."})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), token, req.Password, req.ConfirmPassword); err != nil {
		return h.renderResetError(c, token, err)
	}
	return c.Render(http.StatusOK, view.ResetPassword, view.Page{Message: "Password updated successfully. You can now sign in."})
}

func (h *AuthHandler) renderResetError(c echo.Context, token string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Render(http.StatusBadRequest, view.ResetPassword, view.Page{Token: token, Error: ve.Msg})
	case errors.Is(err, domain.ErrInvalidToken):
		return c.Render(http.StatusBadRequest, view.ForgotPassword, view.Page{Error: "Invalid or expired token."})
	}
	h.log.Error().Err(err).Msg("reset password")
	return c.Render(http.StatusInternalServerError, view.ForgotPassword, view.Page{Error: "Server error."})
}
