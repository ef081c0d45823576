package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("Alice", "alice@entreprise.fr", "secret123", ROLE_USER)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, ROLE_USER, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, ":")
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("autre"))
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name  string
		uname string
		email string
		role  string
	}{
		{"empty name", "", "a@b.fr", ROLE_USER},
		{"bad email", "Alice", "pas-un-email", ROLE_USER},
		{"unknown role", "Alice", "a@b.fr", "root"},
		{"name too long", strings.Repeat("x", 151), "a@b.fr", ROLE_USER},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.uname, tt.email, "secret123", tt.role)
			assert.Error(t, err)
		})
	}
}

func TestSetPasswordRotatesCredential(t *testing.T) {
	user, err := CreateUser("Bob", "bob@entreprise.fr", "ancien123", ROLE_EMPLOYEE)
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("nouveau456"))
	assert.False(t, user.CheckPassword("ancien123"))
	assert.True(t, user.CheckPassword("nouveau456"))
}

func TestDocumentValidateStatus(t *testing.T) {
	doc := &Document{Title: "Test", Category: "Rapports", Status: DOCUMENT_STATUS_DRAFT}
	assert.NoError(t, doc.Validate())

	doc.Status = DOCUMENT_STATUS_PROCESSING
	assert.NoError(t, doc.Validate())

	doc.Status = "perdu"
	assert.Error(t, doc.Validate())
}
