package repository

import (
	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// UserRepository defines user-related persistence operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	List() ([]models.User, error)
	Count() (int, error)
}

// DocumentRepository defines document persistence and search operations.
type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByID(id string) (*models.Document, error)
	Update(id string, update models.DocumentUpdate) (*models.Document, error)
	Delete(id string) error
	List() ([]models.Document, error)
	Count() (int, error)
	TotalSizeBytes() (int64, error)
	Search(query, category, status string) ([]models.Document, error)
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(cat *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	Update(cat *models.Category) error
	Delete(id string) error
	List() ([]models.Category, error)
}

// ActivityRepository is the append-only audit trail, newest first.
type ActivityRepository interface {
	Create(activity *models.Activity) error
	List() ([]models.Activity, error)
	ListByUser(userID string) ([]models.Activity, error)
}

// NotificationRepository defines per-user notification operations.
type NotificationRepository interface {
	Create(notif *models.Notification) error
	ListByUser(userID string) ([]models.Notification, error)
	UnreadCount(userID string) (int, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
}

// SessionRepository defines session token persistence.
type SessionRepository interface {
	Create(sess *models.Session) error
	GetByToken(token string) (*models.Session, error)
	DeleteByToken(token string) error
	PurgeExpired() error
}

// SubscriptionRepository defines subscription persistence. Rows are mutated
// in place; there is no delete.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByUserID(userID string) (*models.Subscription, error)
	GetByStripeSubscriptionID(stripeSubID string) (*models.Subscription, error)
	GetByStripeCustomerID(stripeCustomerID string) (*models.Subscription, error)
	Update(id string, update models.SubscriptionUpdate) (*models.Subscription, error)
}

// InvoiceRepository is append-only payment history.
type InvoiceRepository interface {
	Create(inv *models.Invoice) error
	ListByUser(userID string) ([]models.Invoice, error)
}

// Repositories holds all repository instances.
type Repositories struct {
	User         UserRepository
	Document     DocumentRepository
	Category     CategoryRepository
	Activity     ActivityRepository
	Notification NotificationRepository
	Session      SessionRepository
	Subscription SubscriptionRepository
	Invoice      InvoiceRepository
}

// NewRepositories creates all repositories over the given store.
func NewRepositories(st *store.Store) *Repositories {
	return &Repositories{
		User:         NewUserRepository(st),
		Document:     NewDocumentRepository(st),
		Category:     NewCategoryRepository(st),
		Activity:     NewActivityRepository(st),
		Notification: NewNotificationRepository(st),
		Session:      NewSessionRepository(st),
		Subscription: NewSubscriptionRepository(st),
		Invoice:      NewInvoiceRepository(st),
	}
}
