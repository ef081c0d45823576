package repository

import (
	"sort"
	"sync"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// notificationRepository implements the NotificationRepository interface
type notificationRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(st *store.Store) NotificationRepository {
	return &notificationRepository{st: st}
}

func (r *notificationRepository) readAll() ([]models.Notification, error) {
	var notifs []models.Notification
	if err := r.st.ReadAll(store.KindNotifications, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// Create prepends the notification and drops everything past the global
// retention cap.
func (r *notificationRepository) Create(notif *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifs, err := r.readAll()
	if err != nil {
		return err
	}
	notifs = append([]models.Notification{*notif}, notifs...)
	if len(notifs) > models.MaxNotifications {
		notifs = notifs[:models.MaxNotifications]
	}
	return r.st.WriteAll(store.KindNotifications, notifs)
}

// ListByUser returns a user's notifications, newest first.
func (r *notificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	notifs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UnreadCount counts a user's unread notifications.
func (r *notificationRepository) UnreadCount(userID string) (int, error) {
	notifs, err := r.readAll()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifs {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flags a single notification as read. The notification must
// belong to userID; anything else is not found.
func (r *notificationRepository) MarkRead(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifs, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range notifs {
		if notifs[i].ID == id && notifs[i].UserID == userID {
			notifs[i].Read = true
			return r.st.WriteAll(store.KindNotifications, notifs)
		}
	}
	return ErrNotFound
}

// MarkAllRead flags all of a user's notifications as read.
func (r *notificationRepository) MarkAllRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifs, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range notifs {
		if notifs[i].UserID == userID {
			notifs[i].Read = true
		}
	}
	return r.st.WriteAll(store.KindNotifications, notifs)
}
