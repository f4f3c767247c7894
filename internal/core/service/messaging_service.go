package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// messageWriter appends messages to conversations. Direct messages and
// job application messages share it so both use the same counter.
type messageWriter struct {
	conversations ports.ConversationRepository
	messages      ports.MessageRepository
	now           func() time.Time
}

func (w messageWriter) append(ctx context.Context, conv *domain.Conversation, senderID, receiverID, text string) (*domain.Message, error) {
	seq, err := w.conversations.NextSequence(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}
	now := w.now()
	msg, err := w.messages.Create(ctx, &domain.Message{
		ConversationID: conv.ID,
		SequenceNumber: seq,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
		CreatedAt:      now,
	})
	if err != nil {
		return nil, err
	}
	if err := w.conversations.Touch(ctx, conv.ID, now); err != nil {
		return nil, err
	}
	return msg, nil
}

// MessagingService implements two-party conversations.
type MessagingService struct {
	users         ports.UserRepository
	conversations ports.ConversationRepository
	messages      ports.MessageRepository
	writer        messageWriter
	log           zerolog.Logger
}

func NewMessagingService(
	users ports.UserRepository,
	conversations ports.ConversationRepository,
	messages ports.MessageRepository,
	log zerolog.Logger,
) *MessagingService {
	return &MessagingService{
		users:         users,
		conversations: conversations,
		messages:      messages,
		writer: messageWriter{
			conversations: conversations,
			messages:      messages,
			now:           func() time.Time { return time.Now().UTC() },
		},
		log: log,
	}
}

func (s *MessagingService) GetOrCreateConversation(ctx context.Context, callerID, otherID string) (*domain.Conversation, error) {
	if otherID == "" {
		return nil, domain.Invalid("Receiver is required.")
	}
	if callerID == otherID {
		return nil, domain.ErrSelfConversation
	}
	if _, err := s.users.FindByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.conversations.FindOrCreate(ctx, callerID, otherID)
}

func (s *MessagingService) SendMessage(ctx context.Context, in ports.SendMessageInput) (*ports.MessageView, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.Invalid("Message text is required.")
	}
	if in.ReceiverID == "" {
		return nil, domain.Invalid("Receiver is required.")
	}
	if in.SenderID == in.ReceiverID {
		return nil, domain.ErrSelfConversation
	}

	var conv *domain.Conversation
	var err error
	if in.ConversationID == "" {
		conv, err = s.GetOrCreateConversation(ctx, in.SenderID, in.ReceiverID)
	} else {
		conv, err = s.conversations.FindByID(ctx, in.ConversationID)
	}
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(in.SenderID) || !conv.HasParticipant(in.ReceiverID) {
		return nil, domain.ErrForbidden
	}

	msg, err := s.writer.append(ctx, conv, in.SenderID, in.ReceiverID, text)
	if err != nil {
		return nil, err
	}

	sender, err := s.summary(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	return &ports.MessageView{Message: *msg, Sender: sender}, nil
}

func (s *MessagingService) ListConversations(ctx context.Context, callerID string) ([]ports.ConversationSummary, error) {
	convs, err := s.conversations.ListForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(convs))
	for i := range convs {
		ids = append(ids, convs[i].OtherParticipant(callerID))
	}
	summaries, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		other, ok := summaries[c.OtherParticipant(callerID)]
		if !ok {
			continue
		}
		unread, err := s.messages.CountUnread(ctx, c.ID, callerID)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.ConversationSummary{Conversation: c, Other: other, UnreadCount: unread})
	}
	return out, nil
}

// OpenConversation marks as read the messages addressed to callerID.
func (s *MessagingService) OpenConversation(ctx context.Context, conversationID, callerID string) (*ports.ConversationDetail, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(callerID) {
		return nil, domain.ErrConversationNotFound
	}

	if _, err := s.messages.MarkRead(ctx, conv.ID, callerID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.users.FindSummaries(ctx, conv.Users)
	if err != nil {
		return nil, err
	}

	views := make([]ports.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, ports.MessageView{Message: m, Sender: summaries[m.SenderID]})
	}
	return &ports.ConversationDetail{
		Conversation: *conv,
		Other:        summaries[conv.OtherParticipant(callerID)],
		Messages:     views,
	}, nil
}

func (s *MessagingService) summary(ctx context.Context, userID string) (domain.UserSummary, error) {
	m, err := s.users.FindSummaries(ctx, []string{userID})
	if err != nil {
		return domain.UserSummary{}, err
	}
	u, ok := m[userID]
	if !ok {
		return domain.UserSummary{}, domain.ErrUserNotFound
	}
	return u, nil
}
