package repository

import (
	"sync"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	st    *store.Store
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(st *store.Store) *Factory {
	return &Factory{st: st}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.st)
	})
	return f.repos
}

func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

func (f *Factory) GetDocumentRepository() DocumentRepository {
	return f.GetRepositories().Document
}

func (f *Factory) GetCategoryRepository() CategoryRepository {
	return f.GetRepositories().Category
}

func (f *Factory) GetActivityRepository() ActivityRepository {
	return f.GetRepositories().Activity
}

func (f *Factory) GetNotificationRepository() NotificationRepository {
	return f.GetRepositories().Notification
}

func (f *Factory) GetSessionRepository() SessionRepository {
	return f.GetRepositories().Session
}

func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

func (f *Factory) GetInvoiceRepository() InvoiceRepository {
	return f.GetRepositories().Invoice
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(st *store.Store) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(st)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
