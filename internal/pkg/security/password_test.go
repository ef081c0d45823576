package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	parts := strings.Split(hash, ":")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 32)  // 16 random bytes, hex
	assert.Len(t, parts[1], 128) // 64 derived bytes, hex
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret!", hash))
	assert.False(t, VerifyPassword("S3cret!", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPasswordMalformedCredential(t *testing.T) {
	tests := []struct {
		name string
		cred string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"bad salt hex", "zz:00ff"},
		{"bad hash hex", "00ff:zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("whatever", tt.cred))
		})
	}
}

func TestGenerateSessionTokenShape(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)

	// uuid (36 chars) + "-" + 16 random bytes hex (32 chars)
	assert.Len(t, token, 69)

	other, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
