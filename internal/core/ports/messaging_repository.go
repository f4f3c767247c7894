package ports

import (
	"context"
	"time"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// ConversationRepository persists two-party conversations.
type ConversationRepository interface {
	// FindOrCreate returns the conversation of the unordered pair, creating it
	// when absent.
	FindOrCreate(ctx context.Context, a, b string) (*domain.Conversation, error)
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	// ListForUser returns the user's conversations, latest activity first.
	ListForUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	// NextSequence atomically increments and returns the conversation counter.
	NextSequence(ctx context.Context, id string) (int64, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

// MessageRepository persists conversation entries.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// ListByConversation returns messages ordered by sequence number.
	ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
	// MarkRead flags as read the unread messages addressed to receiverID.
	MarkRead(ctx context.Context, conversationID, receiverID string) (int64, error)
	CountUnread(ctx context.Context, conversationID, receiverID string) (int64, error)
}
