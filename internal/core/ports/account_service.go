package ports

import (
	"context"
	"time"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// SignupInput carries the signup form.
type SignupInput struct {
	Username    string
	Email       string
	Gender      string
	Password    string
	DateOfBirth time.Time
	Location    string
	Bio         string
	Picture     *FileInput // optional
}

// SignupResult is returned once the verification mail went out.
type SignupResult struct {
	User           *domain.User
	ProfilePicture string
}

// AuthService drives the account and credential lifecycle.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	Verify(ctx context.Context, token string) error
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	CheckResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
}

// ConnectionState describes how a viewer relates to a profile owner.
type ConnectionState struct {
	Status       string             `json:"status"` // none, pending, accepted
	ConnectionID string             `json:"connectionId,omitempty"`
	IsRequester  bool               `json:"isRequester"`
	Connection   *domain.Connection `json:"-"`
}

// ProfileView is a profile as seen by a viewer.
type ProfileView struct {
	User         *domain.User
	Status       domain.ProfileStatus
	IsOwnProfile bool
	Connection   ConnectionState
}

// ExperienceInput is an unparsed experience entry from the client.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	StartDate   string
	EndDate     string
	Current     bool
	Description string
}

// UpdateProfileInput carries the profile form.
type UpdateProfileInput struct {
	Headline    string
	Work        string
	Bio         string
	Experiences []ExperienceInput // nil keeps the stored list
}

// ProfileService serves profile pages, edits and profile uploads.
type ProfileService interface {
	GetOwn(ctx context.Context, userID string) (*ProfileView, error)
	GetByUsername(ctx context.Context, viewerID, username string) (*ProfileView, error)
	Update(ctx context.Context, userID string, in UpdateProfileInput) (*ProfileView, error)
	UploadResume(ctx context.Context, userID string, file FileInput) (string, error)
	UploadProfilePicture(ctx context.Context, userID string, file FileInput) (string, error)
	ProfileViews(ctx context.Context, userID string) (int64, error)
}

// Notification is a pending connection request with its requester.
type Notification struct {
	Connection domain.Connection
	Requester  domain.UserSummary
}

// ConnectionService manages the connection graph and user lookups.
type ConnectionService interface {
	Search(ctx context.Context, username string) ([]domain.UserSummary, error)
	Request(ctx context.Context, requesterID, receiverID string) (*domain.Connection, error)
	Accept(ctx context.Context, callerID, connectionID string) error
	Decline(ctx context.Context, callerID, connectionID string) error
	Notifications(ctx context.Context, callerID string) ([]Notification, error)
	Count(ctx context.Context, callerID string) (int64, error)
	SetBlocked(ctx context.Context, callerID, targetID string, blocked bool) error
}
