// Package session issues and verifies the signed credential carried in the
// session cookie.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// CookieName is the cookie holding the credential.
const CookieName = "jwt"

var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
)

type claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 credentials valid for TTL.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued credentials.
func (i *Issuer) TTL() time.Duration { return i.ttl }

func (i *Issuer) Issue(id domain.Identity) (string, error) {
	return Issue(id, string(i.secret), i.now(), i.ttl)
}

// Issue signs identity with secret, valid from now for ttl.
func Issue(id domain.Identity, secret string, now time.Time, ttl time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:    id.ID,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies token against secret at now. It depends on nothing else.
func Parse(token, secret string, now time.Time) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrTokenMissing
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || c.ID == "" {
		return domain.Identity{}, ErrTokenInvalid
	}
	return domain.Identity{ID: c.ID, Email: c.Email}, nil
}
