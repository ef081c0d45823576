package repository

import (
	"sort"
	"sync"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewActivityRepository creates a new activity repository instance
func NewActivityRepository(st *store.Store) ActivityRepository {
	return &activityRepository{st: st}
}

func (r *activityRepository) readAll() ([]models.Activity, error) {
	var acts []models.Activity
	if err := r.st.ReadAll(store.KindActivities, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// Create prepends the activity and drops everything past the retention cap.
func (r *activityRepository) Create(activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acts, err := r.readAll()
	if err != nil {
		return err
	}
	acts = append([]models.Activity{*activity}, acts...)
	if len(acts) > models.MaxActivities {
		acts = acts[:models.MaxActivities]
	}
	return r.st.WriteAll(store.KindActivities, acts)
}

// List returns all activities, newest first.
func (r *activityRepository) List() ([]models.Activity, error) {
	acts, err := r.readAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].CreatedAt.After(acts[j].CreatedAt)
	})
	return acts, nil
}

// ListByUser returns a single user's activities, newest first.
func (r *activityRepository) ListByUser(userID string) ([]models.Activity, error) {
	acts, err := r.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.Activity, 0, len(acts))
	for _, a := range acts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
