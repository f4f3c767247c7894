package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestParse_RoundTrip(t *testing.T) {
	tok, err := Issue(domain.Identity{ID: "u1", Email: "a@b.c"}, "secret", t0, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	id, err := Parse(tok, "secret", t0.Add(59*time.Minute))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if id.ID != "u1" || id.Email != "a@b.c" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestParse_Failures(t *testing.T) {
	tok, err := Issue(domain.Identity{ID: "u1", Email: "a@b.c"}, "secret", t0, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "u1", "exp": t0.Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := []struct {
		name  string
		token string
		key   string
		at    time.Time
		want  error
	}{
		{"missing", "", "secret", t0, ErrTokenMissing},
		{"expired", tok, "secret", t0.Add(2 * time.Hour), ErrTokenInvalid},
		{"wrong secret", tok, "other", t0, ErrTokenInvalid},
		{"garbage", "not-a-jwt", "secret", t0, ErrTokenInvalid},
		{"alg none", unsigned, "secret", t0, ErrTokenInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.token, tc.key, tc.at); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestIssuer_UsesTTL(t *testing.T) {
	iss := NewIssuer("secret", 0)
	if iss.TTL() != time.Hour {
		t.Fatalf("expected default ttl of 1h, got %v", iss.TTL())
	}
	iss.now = func() time.Time { return t0 }
	tok, err := iss.Issue(domain.Identity{ID: "u2"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := Parse(tok, "secret", t0.Add(61*time.Minute)); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected token to expire after ttl, got %v", err)
	}
}
