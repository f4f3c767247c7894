package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

var discardLogger = zerolog.Nop()

type authFixture struct {
	users  *stubUserRepo
	files  *stubFileStore
	mailer *stubMailer
	queue  *inlineQueue
	svc    *AuthService
	clock  time.Time
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newStubUserRepo(),
		files:  &stubFileStore{},
		mailer: &stubMailer{},
		queue:  &inlineQueue{},
		clock:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewAuthService(f.users, f.files, f.mailer, f.queue, stubThrottle{allow: true}, stubIssuer{}, "http://localhost:8080/", discardLogger)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func validSignup() ports.SignupInput {
	return ports.SignupInput{
		Username:    "alice",
		Email:       "Alice@Example.com",
		Gender:      "female",
		Password:    "s3cret!",
		DateOfBirth: time.Date(1995, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestAuthService_Signup_CreatesUnverifiedAccountAndMailsLink(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfilePicture, res.ProfilePicture)

	stored, err := f.users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.IsVerified)
	assert.Len(t, stored.VerifyToken, 64)
	assert.Equal(t, domain.DefaultLocation, stored.Location)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret!")))

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "http://localhost:8080/verify/"+stored.VerifyToken, f.mailer.sent[0].link)
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	f := newAuthFixture()
	in := validSignup()
	in.Gender = ""

	_, err := f.svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.users.users)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.add(domain.User{Username: "other", Email: "alice@example.com"})

	_, err := f.svc.Signup(context.Background(), validSignup())
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestAuthService_Signup_MailFailureRollsBack(t *testing.T) {
	f := newAuthFixture()
	f.mailer.err = errors.New("smtp down")
	in := validSignup()
	in.Picture = &ports.FileInput{Filename: "me.png", Content: strings.NewReader("x")}

	_, err := f.svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrMailDelivery)

	_, lookupErr := f.users.FindByEmail(context.Background(), "alice@example.com")
	assert.ErrorIs(t, lookupErr, domain.ErrUserNotFound)
	require.Len(t, f.files.saved, 1)
	assert.Equal(t, f.files.saved, f.files.removed)
}

func TestAuthService_Signup_RemovesUploadWhenCreateFails(t *testing.T) {
	f := newAuthFixture()
	f.users.createErr = errors.New("db down")
	in := validSignup()
	in.Picture = &ports.FileInput{Filename: "me.png", Content: strings.NewReader("x")}

	_, err := f.svc.Signup(context.Background(), in)
	require.Error(t, err)
	assert.Len(t, f.files.removed, 1)
	assert.Empty(t, f.mailer.sent)
}

func TestAuthService_Verify_IsSingleUse(t *testing.T) {
	f := newAuthFixture()
	id := f.users.add(domain.User{Email: "a@x.io", VerifyToken: "tok"})

	require.NoError(t, f.svc.Verify(context.Background(), "tok"))
	u, _ := f.users.FindByID(context.Background(), id)
	assert.True(t, u.IsVerified)
	assert.Empty(t, u.VerifyToken)

	assert.ErrorIs(t, f.svc.Verify(context.Background(), "tok"), domain.ErrInvalidToken)
	assert.ErrorIs(t, f.svc.Verify(context.Background(), ""), domain.ErrInvalidToken)
}

func addVerified(t *testing.T, users *stubUserRepo, email, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return users.add(domain.User{Username: strings.Split(email, "@")[0], Email: email, PasswordHash: string(hash), IsVerified: true})
}

func TestAuthService_Signin(t *testing.T) {
	f := newAuthFixture()
	id := addVerified(t, f.users, "bob@example.com", "pw")

	token, user, err := f.svc.Signin(context.Background(), " BOB@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "token-"+id, token)
	assert.Equal(t, id, user.ID)

	_, _, err = f.svc.Signin(context.Background(), "bob@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = f.svc.Signin(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Signin_RejectsUnverifiedAndBlocked(t *testing.T) {
	f := newAuthFixture()
	id := addVerified(t, f.users, "carol@example.com", "pw")

	f.users.users[id].IsVerified = false
	_, _, err := f.svc.Signin(context.Background(), "carol@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrNotVerified)

	f.users.users[id].IsVerified = true
	f.users.users[id].IsBlocked = true
	_, _, err = f.svc.Signin(context.Background(), "carol@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrAccountBlocked)
}

func TestAuthService_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.queue.names)
}

func TestAuthService_ForgotPassword_Throttled(t *testing.T) {
	f := newAuthFixture()
	f.svc.throttle = stubThrottle{allow: false}
	id := addVerified(t, f.users, "dan@example.com", "pw")

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "dan@example.com"))
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.users.users[id].ResetToken)
}

func TestAuthService_ResetToken_ExpiresAfterOneHourAndIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	id := addVerified(t, f.users, "erin@example.com", "old")

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "erin@example.com"))
	require.Equal(t, []string{"mail.password_reset"}, f.queue.names)
	token := f.users.users[id].ResetToken
	require.Len(t, token, 64)
	assert.Equal(t, "http://localhost:8080/password/reset/"+token, f.mailer.sent[0].link)
	assert.Equal(t, f.clock.Add(time.Hour), *f.users.users[id].ResetExpires)

	start := f.clock
	f.clock = start.Add(59 * time.Minute)
	require.NoError(t, f.svc.CheckResetToken(context.Background(), token))

	f.clock = start.Add(time.Hour)
	assert.ErrorIs(t, f.svc.CheckResetToken(context.Background(), token), domain.ErrInvalidToken)
	assert.ErrorIs(t, f.svc.ResetPassword(context.Background(), token, "new", "new"), domain.ErrInvalidToken)

	f.clock = start.Add(30 * time.Minute)
	require.NoError(t, f.svc.ResetPassword(context.Background(), token, "new", "new"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.users.users[id].PasswordHash), []byte("new")))

	err := f.svc.ResetPassword(context.Background(), token, "newer", "newer")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_ResetPassword_Validation(t *testing.T) {
	f := newAuthFixture()

	assert.ErrorIs(t, f.svc.ResetPassword(context.Background(), "tok", "a", "b"), domain.ErrValidation)
	assert.ErrorIs(t, f.svc.ResetPassword(context.Background(), "tok", "", ""), domain.ErrValidation)
}
