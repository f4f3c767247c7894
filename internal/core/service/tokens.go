package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	opaqueTokenBytes = 32
	resetTokenTTL    = time.Hour
	bcryptCost       = 10
)

// newOpaqueToken returns 32 random bytes hex encoded.
func newOpaqueToken() (string, error) {
	b := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
