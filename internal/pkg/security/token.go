package security

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateSessionToken returns an unguessable opaque token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return uuid.NewString() + "-" + hex.EncodeToString(b), nil
}
