package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/api/metrics"
	"github.com/yesser147/linkedinSocialMedia/internal/api/view"
	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// ProfileHandler serves profile pages, edits and profile uploads.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type updateProfileRequest struct {
	Headline    string              `json:"headline"    validate:"required,max=220"`
	Work        string              `json:"work"        validate:"required,max=500"`
	Bio         string              `json:"bio"         validate:"required,max=2600"`
	Experiences []experienceRequest `json:"experiences"`
}

type profileResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message,omitempty"`
	User          *domain.User           `json:"user"`
	ProfileStatus domain.ProfileStatus   `json:"profileStatus"`
	IsOwnProfile  bool                   `json:"isOwnProfile"`
	Connection    *ports.ConnectionState `json:"connection,omitempty"`
}

type resumeResponse struct {
	messageResponse
	Resume string `json:"resume"`
}

type pictureResponse struct {
	messageResponse
	ProfilePicture string `json:"profilePicture"`
}

type profileViewsResponse struct {
	Success      bool  `json:"success"`
	ProfileViews int64 `json:"profileViews"`
}

func toProfileResponse(v *ports.ProfileView, msg string) profileResponse {
	resp := profileResponse{
		Success:       true,
		Message:       msg,
		User:          v.User,
		ProfileStatus: v.Status,
		IsOwnProfile:  v.IsOwnProfile,
	}
	if !v.IsOwnProfile {
		conn := v.Connection
		resp.Connection = &conn
	}
	return resp
}

// Home renders the landing page of a signed-in user.
func (h *ProfileHandler) Home(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	v, err := h.profiles.GetOwn(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Render(http.StatusOK, view.Login, view.Page{})
		}
		return err
	}
	return c.Render(http.StatusOK, view.Home, view.Page{User: v.User})
}

// GetOwn returns the caller's profile.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) GetOwn(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	v, err := h.profiles.GetOwn(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(v, ""))
}

// GetByUsername returns another member's profile and counts the view.
//
// @Summary      Profile by username
// @Tags         profile
// @Produce      json
// @Security     CookieAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      404       {object}  messageResponse
// @Router       /api/profile/{username} [get]
func (h *ProfileHandler) GetByUsername(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	v, err := h.profiles.GetByUsername(c.Request().Context(), userID, c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(v, ""))
}

// Update edits headline, work, bio and experiences.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/profile/update [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.UpdateProfileInput{Headline: req.Headline, Work: req.Work, Bio: req.Bio}
	if req.Experiences != nil {
		in.Experiences = make([]ports.ExperienceInput, 0, len(req.Experiences))
		for _, e := range req.Experiences {
			in.Experiences = append(in.Experiences, ports.ExperienceInput(e))
		}
	}

	v, err := h.profiles.Update(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(v, "Profile updated successfully."))
}

// UploadResume stores a PDF resume and replaces the previous one.
//
// @Summary      Upload resume
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Security     CookieAuth
// @Param        resume  formData  file  true  "PDF, 5MB max"
// @Success      200     {object}  resumeResponse
// @Failure      400     {object}  messageResponse
// @Router       /api/profile/uploadresume [post]
func (h *ProfileHandler) UploadResume(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	file, closeFile, err := requiredFile(c, "resume")
	if err != nil {
		return err
	}
	defer closeFile()

	ref, err := h.profiles.UploadResume(c.Request().Context(), userID, *file)
	if err != nil {
		return err
	}
	metrics.UploadsTotal.WithLabelValues(string(domain.UploadResume)).Inc()
	return c.JSON(http.StatusOK, resumeResponse{messageResponse: ok("Resume uploaded successfully."), Resume: ref})
}

// UploadProfilePicture stores a new avatar and replaces the previous one.
//
// @Summary      Upload profile picture
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Security     CookieAuth
// @Param        profilePicture  formData  file  true  "jpeg, png, gif or webp, 5MB max"
// @Success      200             {object}  pictureResponse
// @Failure      400             {object}  messageResponse
// @Router       /api/profile/upload-profile-picture [post]
func (h *ProfileHandler) UploadProfilePicture(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	file, closeFile, err := requiredFile(c, "profilePicture")
	if err != nil {
		return err
	}
	defer closeFile()

	ref, err := h.profiles.UploadProfilePicture(c.Request().Context(), userID, *file)
	if err != nil {
		return err
	}
	metrics.UploadsTotal.WithLabelValues(string(domain.UploadProfilePicture)).Inc()
	return c.JSON(http.StatusOK, pictureResponse{messageResponse: ok("Profile picture updated successfully."), ProfilePicture: ref})
}

// ProfileViews returns the caller's profile view counter.
//
// @Summary      Profile view count
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  profileViewsResponse
// @Router       /api/user/profileviews [get]
func (h *ProfileHandler) ProfileViews(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.profiles.ProfileViews(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileViewsResponse{Success: true, ProfileViews: n})
}
