package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

type captureDialer struct {
	msgs []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.msgs = append(d.msgs, m...)
	return d.err
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	return buf.String()
}

func TestSendVerification(t *testing.T) {
	d := &captureDialer{}
	s := NewSMTPSenderWithDialer("bot@example.com", d)

	if err := s.SendVerification(context.Background(), "alice@example.com", "http://localhost:8080/verify/abc123"); err != nil {
		t.Fatalf("SendVerification returned error: %v", err)
	}
	if len(d.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(d.msgs))
	}
	if got := d.msgs[0].GetHeader("To"); len(got) != 1 || got[0] != "alice@example.com" {
		t.Fatalf("unexpected recipient %v", got)
	}
	if !strings.Contains(render(t, d.msgs[0]), "verify/abc123") {
		t.Fatalf("verification link missing from body")
	}
}

func TestSendPasswordReset_PropagatesDialError(t *testing.T) {
	d := &captureDialer{err: errors.New("connection refused")}
	s := NewSMTPSenderWithDialer("bot@example.com", d)

	err := s.SendPasswordReset(context.Background(), "bob@example.com", "http://x/password/reset/t")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected dial error, got %v", err)
	}
}

func TestSend_CancelledContext(t *testing.T) {
	d := &captureDialer{}
	s := NewSMTPSenderWithDialer("bot@example.com", d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.SendVerification(ctx, "a@b.c", "http://x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(d.msgs) != 0 {
		t.Fatalf("nothing should be sent after cancellation")
	}
}
