// Package mail delivers account e-mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP account used for outgoing mail.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Dialer is the part of gomail.Dialer the sender needs.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender renders account messages and sends them through a Dialer.
type SMTPSender struct {
	from   string
	dialer Dialer
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return NewSMTPSenderWithDialer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password))
}

func NewSMTPSenderWithDialer(from string, dialer Dialer) *SMTPSender {
	return &SMTPSender{from: from, dialer: dialer}
}

var (
	verifyTmpl = template.Must(template.New("verify").Parse(
		`<p>Welcome to SocialSphere!</p>` +
			`<p>Please confirm your email address by clicking the link below:</p>` +
			`<p><a href="{{.}}">Verify my account</a></p>` +
			`<p>If you did not create an account, you can ignore this message.</p>`))

	resetTmpl = template.Must(template.New("reset").Parse(
		`<p>You requested a password reset.</p>` +
			`<p><a href="{{.}}">Choose a new password</a></p>` +
			`<p>This link expires in one hour. If you did not ask for it, ignore this message.</p>`))
)

func (s *SMTPSender) SendVerification(ctx context.Context, to, link string) error {
	return s.send(ctx, to, "Verify your SocialSphere account", verifyTmpl, link)
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, link string) error {
	return s.send(ctx, to, "Reset your SocialSphere password", resetTmpl, link)
}

func (s *SMTPSender) send(ctx context.Context, to, subject string, tmpl *template.Template, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, link); err != nil {
		return fmt.Errorf("render %s mail: %w", tmpl.Name(), err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %s mail: %w", tmpl.Name(), err)
	}
	return nil
}
