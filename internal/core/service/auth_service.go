package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// AuthService implements signup, verification, sign-in and password reset.
type AuthService struct {
	users    ports.UserRepository
	files    ports.FileStore
	mailer   ports.Mailer
	tasks    ports.TaskQueue
	throttle ports.Throttle
	tokens   ports.TokenIssuer
	baseURL  string
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	files ports.FileStore,
	mailer ports.Mailer,
	tasks ports.TaskQueue,
	throttle ports.Throttle,
	tokens ports.TokenIssuer,
	baseURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		files:    files,
		mailer:   mailer,
		tasks:    tasks,
		throttle: throttle,
		tokens:   tokens,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || in.Email == "" || in.Gender == "" || in.Password == "" || in.DateOfBirth.IsZero() {
		return nil, domain.Invalid("Please fill in all required fields.")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.Invalid("Please provide a valid email address.")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	picture := domain.DefaultProfilePicture
	uploaded := ""
	if in.Picture != nil {
		ref, err := s.files.Save(ctx, domain.UploadProfilePicture, *in.Picture)
		if err != nil {
			return nil, err
		}
		picture, uploaded = ref, ref
	}
	cleanup := func() {
		if uploaded != "" {
			s.removeFile(ctx, uploaded)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := newOpaqueToken()
	if err != nil {
		cleanup()
		return nil, err
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = domain.DefaultLocation
	}
	now := s.now()
	user, err := s.users.Create(ctx, &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		Gender:         in.Gender,
		PasswordHash:   string(hash),
		VerifyToken:    token,
		Location:       location,
		ProfilePicture: picture,
		DateOfBirth:    in.DateOfBirth,
		Bio:            strings.TrimSpace(in.Bio),
		Experiences:    []domain.Experience{},
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	if err := s.mailer.SendVerification(ctx, user.Email, s.baseURL+"/verify/"+token); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("verification mail failed, rolling back signup")
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", user.ID).Msg("rollback delete failed")
		}
		cleanup()
		return nil, fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("account created")
	return &ports.SignupResult{User: user, ProfilePicture: picture}, nil
}

func (s *AuthService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	user, err := s.users.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("account verified")
	return nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, domain.ErrNotVerified
	}
	if user.IsBlocked {
		return "", nil, domain.ErrAccountBlocked
	}

	token, err := s.tokens.Issue(domain.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword never reveals whether the address is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Invalid("Email is required.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, "reset:"+user.ID)
		if err != nil {
			s.log.Warn().Err(err).Msg("reset throttle unavailable")
		} else if !ok {
			s.log.Info().Str("user_id", user.ID).Msg("reset mail throttled")
			return nil
		}
	}

	token, err := newOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}

	link := s.baseURL + "/password/reset/" + token
	to := user.Email
	s.tasks.Enqueue(ports.Task{
		Key:  user.ID,
		Name: "mail.password_reset",
		Run: func(ctx context.Context) error {
			return s.mailer.SendPasswordReset(ctx, to, link)
		},
	})
	return nil
}

func (s *AuthService) CheckResetToken(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	_, err := s.users.FindByResetToken(ctx, token, s.now())
	return err
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if password == "" || confirm == "" {
		return domain.Invalid("Both password fields are required.")
	}
	if password != confirm {
		return domain.Invalid("Passwords do not match.")
	}
	if token == "" {
		return domain.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.ConsumeResetToken(ctx, token, s.now(), string(hash))
}

// removeFile schedules best-effort deletion of a stored upload.
func (s *AuthService) removeFile(ctx context.Context, ref string) {
	if err := s.files.Remove(ctx, ref); err != nil {
		s.log.Warn().Err(err).Str("path", ref).Msg("upload cleanup failed")
	}
}
