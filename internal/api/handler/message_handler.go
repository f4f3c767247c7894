package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/api/metrics"
	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// MessageHandler serves the inbox and direct messages.
type MessageHandler struct {
	messaging ports.MessagingService
}

func NewMessageHandler(messaging ports.MessagingService) *MessageHandler {
	return &MessageHandler{messaging: messaging}
}

type createConversationRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
}

type createConversationResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversationId"`
}

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	ReceiverID     string `json:"receiverId"`
	Text           string `json:"text"`
}

type sendMessageResponse struct {
	Success bool               `json:"success"`
	Message *ports.MessageView `json:"message"`
}

type conversationItem struct {
	ID                 string             `json:"id"`
	User               domain.UserSummary `json:"user"`
	LastSequenceNumber int64              `json:"lastSequenceNumber"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	UnreadCount        int64              `json:"unreadCount"`
	HasUnreadMessages  bool               `json:"hasUnreadMessages"`
}

type conversationsResponse struct {
	Success       bool               `json:"success"`
	Conversations []conversationItem `json:"conversations"`
}

type conversationHeader struct {
	ID                 string             `json:"id"`
	User               domain.UserSummary `json:"user"`
	LastSequenceNumber int64              `json:"lastSequenceNumber"`
}

type conversationDetailResponse struct {
	Success      bool                `json:"success"`
	Conversation conversationHeader  `json:"conversation"`
	Messages     []ports.MessageView `json:"messages"`
}

// List returns the caller's conversations, most recent activity first.
//
// @Summary      List conversations
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  conversationsResponse
// @Router       /api/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.messaging.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]conversationItem, 0, len(list))
	for _, s := range list {
		items = append(items, conversationItem{
			ID:                 s.Conversation.ID,
			User:               s.Other,
			LastSequenceNumber: s.Conversation.LastSequence,
			UpdatedAt:          s.Conversation.UpdatedAt,
			UnreadCount:        s.UnreadCount,
			HasUnreadMessages:  s.UnreadCount > 0,
		})
	}
	return c.JSON(http.StatusOK, conversationsResponse{Success: true, Conversations: items})
}

// CreateConversation returns the conversation with receiverId, creating it
// when absent.
//
// @Summary      Get or create a conversation
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createConversationRequest  true  "Other participant"
// @Success      200   {object}  createConversationResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/messages/conversation/create [post]
func (h *MessageHandler) CreateConversation(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createConversationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	conv, err := h.messaging.GetOrCreateConversation(c.Request().Context(), userID, req.ReceiverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createConversationResponse{Success: true, ConversationID: conv.ID})
}

// Send appends a message to a conversation.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      200   {object}  sendMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/messages/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload.")
	}

	msg, err := h.messaging.SendMessage(c.Request().Context(), ports.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       userID,
		ReceiverID:     req.ReceiverID,
		Text:           req.Text,
	})
	if err != nil {
		return err
	}
	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusOK, sendMessageResponse{Success: true, Message: msg})
}

// Open marks the conversation read for the caller and returns its history.
//
// @Summary      Open a conversation
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Param        conversationId  path      string  true  "Conversation id"
// @Success      200             {object}  conversationDetailResponse
// @Failure      404             {object}  messageResponse
// @Router       /api/messages/message/{conversationId} [get]
func (h *MessageHandler) Open(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	d, err := h.messaging.OpenConversation(c.Request().Context(), c.Param("conversationId"), userID)
	if err != nil {
		return err
	}

	msgs := d.Messages
	if msgs == nil {
		msgs = []ports.MessageView{}
	}
	return c.JSON(http.StatusOK, conversationDetailResponse{
		Success: true,
		Conversation: conversationHeader{
			ID:                 d.Conversation.ID,
			User:               d.Other,
			LastSequenceNumber: d.Conversation.LastSequence,
		},
		Messages: msgs,
	})
}
