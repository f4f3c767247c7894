package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

type stubRenderer struct {
	name string
	data any
}

func (r *stubRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := io.WriteString(w, name)
	return err
}

// newEcho returns an echo instance with the validator and a recording renderer.
func newEcho() (*echo.Echo, *stubRenderer) {
	e := echo.New()
	e.Validator = NewValidator()
	r := &stubRenderer{}
	e.Renderer = r
	return e, r
}

// withUser marks the context as authenticated, as the Auth middleware does.
func withUser(c echo.Context, id string) echo.Context {
	c.Set("user_id", id)
	return c
}

type stubAuthService struct {
	signupFn        func(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error)
	verifyFn        func(ctx context.Context, token string) error
	signinFn        func(ctx context.Context, email, password string) (string, *domain.User, error)
	forgotFn        func(ctx context.Context, email string) error
	checkResetFn    func(ctx context.Context, token string) error
	resetPasswordFn func(ctx context.Context, token, password, confirm string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Verify(ctx context.Context, token string) error {
	return s.verifyFn(ctx, token)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) CheckResetToken(ctx context.Context, token string) error {
	return s.checkResetFn(ctx, token)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	return s.resetPasswordFn(ctx, token, password, confirm)
}

type stubPostService struct {
	ports.PostService
	createFn     func(ctx context.Context, authorID, content string, image *ports.FileInput) (*ports.PostView, error)
	toggleLikeFn func(ctx context.Context, postID, userID string) (*ports.LikeState, error)
	deleteCmtFn  func(ctx context.Context, commentID, callerID string) (bool, error)
}

func (s *stubPostService) Create(ctx context.Context, authorID, content string, image *ports.FileInput) (*ports.PostView, error) {
	return s.createFn(ctx, authorID, content, image)
}

func (s *stubPostService) ToggleLike(ctx context.Context, postID, userID string) (*ports.LikeState, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}

func (s *stubPostService) DeleteComment(ctx context.Context, commentID, callerID string) (bool, error) {
	return s.deleteCmtFn(ctx, commentID, callerID)
}

type stubJobService struct {
	ports.JobService
	createFn func(ctx context.Context, posterID string, in ports.CreateJobInput) (*domain.Job, error)
	applyFn  func(ctx context.Context, jobID, applicantID string) error
}

func (s *stubJobService) Create(ctx context.Context, posterID string, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, posterID, in)
}

func (s *stubJobService) Apply(ctx context.Context, jobID, applicantID string) error {
	return s.applyFn(ctx, jobID, applicantID)
}

type stubMessagingService struct {
	ports.MessagingService
	sendFn func(ctx context.Context, in ports.SendMessageInput) (*ports.MessageView, error)
	openFn func(ctx context.Context, conversationID, callerID string) (*ports.ConversationDetail, error)
}

func (s *stubMessagingService) SendMessage(ctx context.Context, in ports.SendMessageInput) (*ports.MessageView, error) {
	return s.sendFn(ctx, in)
}

func (s *stubMessagingService) OpenConversation(ctx context.Context, conversationID, callerID string) (*ports.ConversationDetail, error) {
	return s.openFn(ctx, conversationID, callerID)
}

type stubConnectionService struct {
	ports.ConnectionService
	setBlockedFn func(ctx context.Context, callerID, targetID string, blocked bool) error
}

func (s *stubConnectionService) SetBlocked(ctx context.Context, callerID, targetID string, blocked bool) error {
	return s.setBlockedFn(ctx, callerID, targetID, blocked)
}

type stubProfileService struct {
	ports.ProfileService
	uploadPictureFn func(ctx context.Context, userID string, file ports.FileInput) (string, error)
}

func (s *stubProfileService) UploadProfilePicture(ctx context.Context, userID string, file ports.FileInput) (string, error) {
	return s.uploadPictureFn(ctx, userID, file)
}
