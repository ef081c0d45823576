package repository

import (
	"sync"
	"time"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(st *store.Store) SubscriptionRepository {
	return &subscriptionRepository{st: st}
}

func (r *subscriptionRepository) readAll() ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.st.ReadAll(store.KindSubscriptions, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Create appends a new subscription row. Callers are responsible for the
// one-row-per-user invariant: look up by user first, update in place.
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.readAll()
	if err != nil {
		return err
	}
	subs = append(subs, *sub)
	return r.st.WriteAll(store.KindSubscriptions, subs)
}

// GetByUserID retrieves the subscription owned by a user.
func (r *subscriptionRepository) GetByUserID(userID string) (*models.Subscription, error) {
	return r.find(func(s *models.Subscription) bool { return s.UserID == userID })
}

// GetByStripeSubscriptionID retrieves a subscription by its external
// subscription reference.
func (r *subscriptionRepository) GetByStripeSubscriptionID(stripeSubID string) (*models.Subscription, error) {
	if stripeSubID == "" {
		return nil, ErrNotFound
	}
	return r.find(func(s *models.Subscription) bool { return s.StripeSubscriptionID == stripeSubID })
}

// GetByStripeCustomerID retrieves a subscription by its external customer
// reference.
func (r *subscriptionRepository) GetByStripeCustomerID(stripeCustomerID string) (*models.Subscription, error) {
	if stripeCustomerID == "" {
		return nil, ErrNotFound
	}
	return r.find(func(s *models.Subscription) bool { return s.StripeCustomerID == stripeCustomerID })
}

func (r *subscriptionRepository) find(match func(*models.Subscription) bool) (*models.Subscription, error) {
	subs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if match(&subs[i]) {
			return &subs[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update merges the changed fields into the stored subscription and
// refreshes its UpdatedAt stamp.
func (r *subscriptionRepository) Update(id string, update models.SubscriptionUpdate) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].ID != id {
			continue
		}
		s := &subs[i]
		if update.PlanID != nil {
			s.PlanID = *update.PlanID
		}
		if update.Status != nil {
			s.Status = *update.Status
		}
		if update.BillingCycle != nil {
			s.BillingCycle = *update.BillingCycle
		}
		if update.StripeCustomerID != nil {
			s.StripeCustomerID = *update.StripeCustomerID
		}
		if update.StripeSubscriptionID != nil {
			s.StripeSubscriptionID = *update.StripeSubscriptionID
		}
		if update.CurrentPeriodStart != nil {
			s.CurrentPeriodStart = *update.CurrentPeriodStart
		}
		if update.CurrentPeriodEnd != nil {
			s.CurrentPeriodEnd = *update.CurrentPeriodEnd
		}
		if update.CancelAtPeriodEnd != nil {
			s.CancelAtPeriodEnd = *update.CancelAtPeriodEnd
		}
		if update.TrialEnd != nil {
			s.TrialEnd = *update.TrialEnd
		}
		s.UpdatedAt = time.Now()

		if err := r.st.WriteAll(store.KindSubscriptions, subs); err != nil {
			return nil, err
		}
		out := *s
		return &out, nil
	}
	return nil, ErrNotFound
}
