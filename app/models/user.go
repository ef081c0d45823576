package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/security"
)

const (
	ROLE_USER     = "user"
	ROLE_EMPLOYEE = "employee"
	ROLE_ADMIN    = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required,min=2,max=150"`
	Email        string    `json:"email" validate:"required,email,min=5,max=200"`
	PasswordHash string    `json:"passwordHash" validate:"required"`
	Role         string    `json:"role" validate:"oneof=user employee admin"`
	Organization string    `json:"organization"`
	Bio          string    `json:"bio" validate:"max=1000"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a validated user with a freshly hashed password.
func CreateUser(name, email, password, role string) (*User, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

// CheckPassword verifies the provided password against the stored credential.
func (u *User) CheckPassword(password string) bool {
	return security.VerifyPassword(password, u.PasswordHash)
}

// SetPassword hashes and sets a new password for the user.
func (u *User) SetPassword(password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}
