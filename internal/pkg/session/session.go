package session

import (
	"time"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/security"
)

// CookieName is the cookie carrying the opaque session token. The core only
// defines token opacity and expiry; the cookie is the transport.
const CookieName = "archivist_session"

// Duration is the session lifetime.
const Duration = 7 * 24 * time.Hour

// Service issues, resolves and destroys sessions persisted in the record
// store.
type Service struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
}

// NewService creates a session service over the given repositories.
func NewService(sessions repository.SessionRepository, users repository.UserRepository) *Service {
	return &Service{sessions: sessions, users: users}
}

// Create issues a new session token for the user, valid for Duration.
func (s *Service) Create(userID string) (string, error) {
	token, err := security.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(Duration),
	}
	if err := s.sessions.Create(sess); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveUser resolves a token to its owning user. Returns false when the
// token is empty, unknown, expired, or the user no longer exists. This is
// the sole authorization primitive for protected operations.
func (s *Service) ResolveUser(token string) (*models.User, bool) {
	if token == "" {
		return nil, false
	}
	sess, err := s.sessions.GetByToken(token)
	if err != nil {
		return nil, false
	}
	if sess.IsExpired() {
		return nil, false
	}
	user, err := s.users.GetByID(sess.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// Destroy deletes the session. Destroying an unknown token is a no-op.
func (s *Service) Destroy(token string) error {
	return s.sessions.DeleteByToken(token)
}

var globalService *Service

// SetupService installs the process-global session service.
func SetupService(svc *Service) {
	globalService = svc
}

// GetService returns the process-global session service.
func GetService() *Service {
	if globalService == nil {
		panic("session service not initialized. Call SetupService first.")
	}
	return globalService
}
