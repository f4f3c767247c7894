package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("please verify your email first")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrMailDelivery       = errors.New("could not send email")

	ErrConnectionExists   = errors.New("connection request already exists")
	ErrSelfConnection     = errors.New("cannot create connection with yourself")
	ErrConnectionNotFound = errors.New("connection request not found")

	ErrConversationNotFound = errors.New("conversation not found")
	ErrSelfConversation     = errors.New("you cannot message yourself")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrJobNotFound    = errors.New("job not found")
	ErrOwnJob         = errors.New("cannot apply to own job")
	ErrAlreadyApplied = errors.New("already applied")

	ErrInvalidUpload  = errors.New("invalid upload")
	ErrUploadTooLarge = errors.New("file too large")

	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries a client-facing message for a rejected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
