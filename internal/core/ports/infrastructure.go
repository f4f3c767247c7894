package ports

import (
	"context"
	"io"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// FileInput is an uploaded file as received from the transport layer.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// FileStore validates and persists uploads and removes stored files.
type FileStore interface {
	// Save returns the stable reference path of the stored file.
	Save(ctx context.Context, kind domain.UploadKind, file FileInput) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Mailer delivers account e-mails.
type Mailer interface {
	SendVerification(ctx context.Context, to, link string) error
	SendPasswordReset(ctx context.Context, to, link string) error
}

// Task is a unit of background work. Tasks sharing a Key run in order.
type Task struct {
	Key  string
	Name string
	Run  func(ctx context.Context) error
}

// TaskQueue accepts fire-and-forget work.
type TaskQueue interface {
	Enqueue(task Task)
}

// ViewDeduper decides whether a profile view should be counted.
type ViewDeduper interface {
	// FirstView returns true the first time viewerID sees profileID within the
	// dedup window.
	FirstView(ctx context.Context, viewerID, profileID string) (bool, error)
}

// Throttle bounds how often an action may run for a key.
type Throttle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenIssuer signs session credentials.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// AdminChecker reports whether an account holds administrator rights.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// BlockChecker reports whether an administrator blocked an account.
type BlockChecker interface {
	IsBlocked(ctx context.Context, userID string) (bool, error)
}
