package repository

import (
	"strings"
	"sync"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(st *store.Store) UserRepository {
	return &userRepository{st: st}
}

func (r *userRepository) readAll() ([]models.User, error) {
	var users []models.User
	if err := r.st.ReadAll(store.KindUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create appends a new user to the collection.
func (r *userRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return err
	}
	users = append(users, *user)
	return r.st.WriteAll(store.KindUsers, users)
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id string) (*models.User, error) {
	users, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	users, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the stored user matching user.ID.
func (r *userRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.st.WriteAll(store.KindUsers, users)
		}
	}
	return ErrNotFound
}

// Delete removes a user by ID.
func (r *userRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return err
	}
	kept := users[:0]
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return ErrNotFound
	}
	return r.st.WriteAll(store.KindUsers, kept)
}

// List returns all users in insertion order.
func (r *userRepository) List() ([]models.User, error) {
	return r.readAll()
}

// Count returns the total number of users
func (r *userRepository) Count() (int, error) {
	users, err := r.readAll()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
