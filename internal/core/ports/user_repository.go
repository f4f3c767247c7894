package ports

import (
	"context"
	"time"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// ProfileUpdate carries the editable profile sections.
type ProfileUpdate struct {
	Headline    string
	Work        string
	Bio         string
	Experiences []domain.Experience
	// ReplaceExperiences is false when the client did not send an
	// experiences list; the stored list is then left untouched.
	ReplaceExperiences bool
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new account. Duplicate email or username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindSummaries returns the public projection of every existing id.
	FindSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error)
	Search(ctx context.Context, username string, limit int) ([]domain.UserSummary, error)

	// ConsumeVerificationToken marks the owner verified and clears the token in
	// one step. An unknown or already used token yields domain.ErrInvalidToken.
	ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	// FindByResetToken only matches tokens expiring after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	// ConsumeResetToken stores passwordHash and clears the token when the token
	// is still valid at now. Otherwise domain.ErrInvalidToken.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) error

	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	// SetProfilePicture and SetResume return the value held before the update.
	SetProfilePicture(ctx context.Context, id, path string) (previous string, err error)
	SetResume(ctx context.Context, id, path string) (previous string, err error)
	IncrementProfileViews(ctx context.Context, id string) error
	SetBlocked(ctx context.Context, id string, blocked bool) error
}
