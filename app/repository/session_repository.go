package repository

import (
	"sync"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewSessionRepository creates a new session repository instance
func NewSessionRepository(st *store.Store) SessionRepository {
	return &sessionRepository{st: st}
}

func (r *sessionRepository) readAll() ([]models.Session, error) {
	var sessions []models.Session
	if err := r.st.ReadAll(store.KindSessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Create appends a new session record.
func (r *sessionRepository) Create(sess *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.readAll()
	if err != nil {
		return err
	}
	sessions = append(sessions, *sess)
	return r.st.WriteAll(store.KindSessions, sessions)
}

// GetByToken retrieves a session by token. Expired sessions are still
// returned; expiry is the session service's concern.
func (r *sessionRepository) GetByToken(token string) (*models.Session, error) {
	sessions, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].Token == token {
			return &sessions[i], nil
		}
	}
	return nil, ErrNotFound
}

// DeleteByToken removes a session. Deleting an unknown token is a no-op.
func (r *sessionRepository) DeleteByToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.readAll()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.Token == token {
			continue
		}
		kept = append(kept, s)
	}
	return r.st.WriteAll(store.KindSessions, kept)
}

// PurgeExpired drops every expired session record.
func (r *sessionRepository) PurgeExpired() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.readAll()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.IsExpired() {
			continue
		}
		kept = append(kept, s)
	}
	return r.st.WriteAll(store.KindSessions, kept)
}
