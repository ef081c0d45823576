package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters: interactive-login strength, 64-byte derived key to
// match the stored credential format.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives a salted credential in "salt:hash" hex form. Hashing
// the same password twice yields different credentials.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword recomputes the hash with the stored salt and compares in
// constant time.
func VerifyPassword(password, credential string) bool {
	salt, want, err := splitCredential(credential)
	if err != nil {
		return false
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(want))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(key, want) == 1
}

func splitCredential(credential string) (salt, hash []byte, err error) {
	parts := strings.SplitN(credential, ":", 2)
	if len(parts) != 2 {
		return nil, nil, errors.New("malformed credential")
	}
	salt, err = hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, err
	}
	hash, err = hex.DecodeString(parts[1])
	if err != nil || len(hash) == 0 {
		return nil, nil, errors.New("malformed credential hash")
	}
	return salt, hash, nil
}
