package ports

import (
	"context"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// SendMessageInput carries a direct message. An empty ConversationID opens
// or reuses the conversation between sender and receiver.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	ReceiverID     string
	Text           string
}

// MessageView is a message with its sender resolved.
type MessageView struct {
	domain.Message
	Sender domain.UserSummary `json:"sender"`
}

// ConversationSummary is an inbox entry.
type ConversationSummary struct {
	Conversation domain.Conversation
	Other        domain.UserSummary
	UnreadCount  int64
}

// ConversationDetail is an opened conversation.
type ConversationDetail struct {
	Conversation domain.Conversation
	Other        domain.UserSummary
	Messages     []MessageView
}

// MessagingService manages conversations and messages.
type MessagingService interface {
	GetOrCreateConversation(ctx context.Context, callerID, otherID string) (*domain.Conversation, error)
	SendMessage(ctx context.Context, in SendMessageInput) (*MessageView, error)
	ListConversations(ctx context.Context, callerID string) ([]ConversationSummary, error)
	OpenConversation(ctx context.Context, conversationID, callerID string) (*ConversationDetail, error)
}

// PostView is a post with its author resolved.
type PostView struct {
	domain.Post
	Author domain.UserSummary `json:"user"`
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	domain.Comment
	Author domain.UserSummary `json:"user"`
}

// LikeState is the outcome of a like toggle or lookup.
type LikeState struct {
	Liked bool
	Count int
}

// PostService manages posts, likes and comments.
type PostService interface {
	Create(ctx context.Context, authorID, content string, image *FileInput) (*PostView, error)
	Feed(ctx context.Context) ([]PostView, error)
	ToggleLike(ctx context.Context, postID, userID string) (*LikeState, error)
	LikeStatus(ctx context.Context, postID, userID string) (*LikeState, error)
	AddComment(ctx context.Context, postID, authorID, text string) (*CommentView, error)
	// DeleteComment reports whether the admin override was used.
	DeleteComment(ctx context.Context, commentID, callerID string) (bool, error)
	ListComments(ctx context.Context, postID string) ([]CommentView, error)
	CountComments(ctx context.Context, postID string) (int64, error)
	Delete(ctx context.Context, postID, callerID string) error
}

// CreateJobInput carries the job posting form.
type CreateJobInput struct {
	Title       string
	Company     string
	Location    string
	Type        string
	Description string
}

// JobListing is an active job as seen by the caller.
type JobListing struct {
	Job        domain.Job
	PostedBy   domain.UserSummary
	HasApplied bool
	IsOwner    bool
	PostedAgo  string
}

// JobService manages postings and applications.
type JobService interface {
	Create(ctx context.Context, posterID string, in CreateJobInput) (*domain.Job, error)
	ListActive(ctx context.Context, callerID string) ([]JobListing, error)
	Apply(ctx context.Context, jobID, applicantID string) error
	Deactivate(ctx context.Context, jobID, callerID string) error
}
