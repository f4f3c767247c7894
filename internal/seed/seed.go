// Package seed creates bootstrap data: an administrator account and a small
// set of sample profiles with posts for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

const bcryptCost = 10

// UserStore is the slice of the user repository the seeder writes through.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	SetAdmin(ctx context.Context, id string, admin bool) error
}

// PostStore creates posts.
type PostStore interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
}

// AdminInput describes the administrator account.
type AdminInput struct {
	Username string
	Email    string
	Password string
}

// Seeder writes bootstrap data.
type Seeder struct {
	users UserStore
	posts PostStore
	log   zerolog.Logger
	now   func() time.Time
}

func New(users UserStore, posts PostStore, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, posts: posts, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Admin creates a verified administrator. An existing account with the same
// email is promoted instead; its password is left untouched.
func (s *Seeder) Admin(ctx context.Context, in AdminInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		return nil, errors.New("seed admin: email is required")
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if err := s.users.SetAdmin(ctx, existing.ID, true); err != nil {
			return nil, fmt.Errorf("seed admin: promote: %w", err)
		}
		existing.IsAdmin = true
		s.log.Info().Str("user_id", existing.ID).Str("email", existing.Email).Msg("existing account promoted to admin")
		return existing, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("seed admin: lookup: %w", err)
	}

	if in.Username == "" || in.Password == "" {
		return nil, errors.New("seed admin: username and password are required for a new account")
	}
	u, err := s.create(ctx, sampleUser{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Headline: "Platform administrator",
	}, true)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	s.log.Info().Str("user_id", u.ID).Str("email", u.Email).Msg("admin account created")
	return u, nil
}

// Samples creates the sample profiles and their posts. Profiles that already
// exist are reused, so running it twice adds only posts.
func (s *Seeder) Samples(ctx context.Context) (users, posts int, err error) {
	ids := make([]string, len(sampleUsers))
	for i, su := range sampleUsers {
		u, err := s.create(ctx, su, false)
		if errors.Is(err, domain.ErrUserExists) {
			u, err = s.users.FindByUsername(ctx, su.Username)
		} else if err == nil {
			users++
		}
		if err != nil {
			return users, posts, fmt.Errorf("seed user %s: %w", su.Username, err)
		}
		ids[i] = u.ID
	}

	now := s.now()
	for i, sp := range samplePosts {
		at := now.Add(-time.Duration(i) * 7 * time.Hour)
		if _, err := s.posts.Create(ctx, &domain.Post{
			UserID:    ids[sp.author],
			Content:   sp.content,
			CreatedAt: at,
			UpdatedAt: at,
		}); err != nil {
			return users, posts, fmt.Errorf("seed post %d: %w", i, err)
		}
		posts++
	}
	s.log.Info().Int("users", users).Int("posts", posts).Msg("sample data created")
	return users, posts, nil
}

func (s *Seeder) create(ctx context.Context, su sampleUser, admin bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	return s.users.Create(ctx, &domain.User{
		Username:       su.Username,
		Email:          su.Email,
		Gender:         su.Gender,
		PasswordHash:   string(hash),
		IsVerified:     true,
		IsAdmin:        admin,
		ProfilePicture: domain.DefaultProfilePicture,
		DateOfBirth:    su.DateOfBirth,
		Headline:       su.Headline,
		Work:           su.Work,
		Bio:            su.Bio,
		Experiences:    su.Experiences,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}
