package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Mongo.Database != "socialsphere" {
		t.Fatalf("unexpected defaults: port=%q db=%q", cfg.Port, cfg.Mongo.Database)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Upload.MaxBytes != 5<<20 {
		t.Fatalf("expected 5MiB upload limit, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.SMTP.Port != 465 || cfg.Limits.ResetMailLimit != 3 {
		t.Fatalf("unexpected smtp/limits defaults: %+v %+v", cfg.SMTP, cfg.Limits)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development environment by default")
	}
}

func TestLoadWith_RequiresSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestSender_FallsBackToUser(t *testing.T) {
	cfg := &Config{SMTP: SMTPConfig{User: "bot@example.com"}}
	if got := cfg.Sender(); got != "bot@example.com" {
		t.Fatalf("expected smtp user as sender, got %q", got)
	}
	cfg.SMTP.From = "SocialSphere <no-reply@example.com>"
	if got := cfg.Sender(); got != cfg.SMTP.From {
		t.Fatalf("expected MAIL_FROM as sender, got %q", got)
	}
}
