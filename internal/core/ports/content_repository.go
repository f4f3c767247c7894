package ports

import (
	"context"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// PostRepository persists posts together with their like sets and comment references.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Feed returns posts newest first.
	Feed(ctx context.Context, limit int) ([]domain.Post, error)
	Delete(ctx context.Context, id string) error
	// ToggleLike adds userID to the like set when absent and removes it
	// otherwise, returning the resulting state and like count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error)
	AddComment(ctx context.Context, postID, commentID string) error
	RemoveComment(ctx context.Context, postID, commentID string) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
}

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// ListActive returns active postings newest first.
	ListActive(ctx context.Context) ([]domain.Job, error)
	// AddApplicant appends the entry unless the user already applied or owns the
	// posting; those cases yield domain.ErrAlreadyApplied and domain.ErrOwnJob.
	AddApplicant(ctx context.Context, jobID string, a domain.Applicant) error
	Deactivate(ctx context.Context, id string) error
}
