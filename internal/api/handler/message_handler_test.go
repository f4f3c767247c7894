package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

func TestMessageHandler_Send(t *testing.T) {
	e, _ := newEcho()
	stub := &stubMessagingService{
		sendFn: func(ctx context.Context, in ports.SendMessageInput) (*ports.MessageView, error) {
			if in.SenderID != "u1" || in.ReceiverID != "u2" || in.ConversationID != "" || in.Text != "hi" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.MessageView{Message: domain.Message{ID: "m1", SequenceNumber: 1, Text: in.Text}}, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/messages/send", strings.NewReader(`{"receiverId":"u2","text":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := handler.Send(withUser(e.NewContext(req, rec), "u1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Success bool `json:"success"`
		Message struct {
			SequenceNumber int64 `json:"sequenceNumber"`
		} `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message.SequenceNumber != 1 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestMessageHandler_Open_EmptyHistory(t *testing.T) {
	e, _ := newEcho()
	stub := &stubMessagingService{
		openFn: func(ctx context.Context, conversationID, callerID string) (*ports.ConversationDetail, error) {
			return &ports.ConversationDetail{
				Conversation: domain.Conversation{ID: conversationID, Users: []string{"u1", "u2"}},
				Other:        domain.UserSummary{ID: "u2", Username: "bob"},
			}, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/message/c1", nil)
	rec := httptest.NewRecorder()
	c := withUser(e.NewContext(req, rec), "u1")
	c.SetParamNames("conversationId")
	c.SetParamValues("c1")

	if err := handler.Open(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	msgs, ok := resp["messages"].([]any)
	if !ok || len(msgs) != 0 {
		t.Fatalf("expected empty messages array, got %v", resp["messages"])
	}
	conv, _ := resp["conversation"].(map[string]any)
	user, _ := conv["user"].(map[string]any)
	if user["username"] != "bob" {
		t.Fatalf("unexpected conversation header: %v", conv)
	}
}
