package billing

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/plans"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

func newTestService(t *testing.T, strict bool) (*Service, *repository.Repositories) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	repos := repository.NewRepositories(st)
	svc := NewService(repos.Subscription, repos.Invoice, repos.User, NewStripeClientWith("", ""), strict)
	return svc, repos
}

func newTestUser(t *testing.T, repos *repository.Repositories) *models.User {
	t.Helper()
	user, err := models.CreateUser("Alice", "alice@entreprise.fr", "secret123", models.ROLE_ADMIN)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(user))
	return user
}

func TestStartFreePlanCreatesStarterSubscription(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	sub, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanStarter, sub.PlanID)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, models.BillingCycleMonthly, sub.BillingCycle)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), sub.CurrentPeriodEnd, time.Minute)
}

func TestStartFreePlanIsIdempotent(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	first, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	second, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestInitiateUpgradeWithoutProviderIsDemoMode(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	result, err := svc.InitiateUpgrade(context.Background(), user, plans.PlanPro, models.BillingCycleYearly)
	require.NoError(t, err)
	assert.True(t, result.Demo)
	assert.Empty(t, result.URL)

	sub, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanPro, sub.PlanID)
	assert.Equal(t, models.BillingCycleYearly, sub.BillingCycle)
	assert.True(t, strings.HasPrefix(sub.StripeCustomerID, "demo_cus_"))
	assert.True(t, strings.HasPrefix(sub.StripeSubscriptionID, "demo_sub_"))
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), sub.CurrentPeriodEnd, time.Minute)
}

func TestInitiateUpgradeToStarterDowngradesInPlace(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	_, err := svc.InitiateUpgrade(context.Background(), user, plans.PlanPro, models.BillingCycleMonthly)
	require.NoError(t, err)

	result, err := svc.InitiateUpgrade(context.Background(), user, plans.PlanStarter, models.BillingCycleMonthly)
	require.NoError(t, err)
	assert.True(t, result.Free)

	sub, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanStarter, sub.PlanID)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Empty(t, sub.StripeSubscriptionID)
	assert.False(t, sub.CancelAtPeriodEnd)
}

func TestCreatePortalSessionWithoutProvider(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	_, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)

	_, err = svc.CreatePortalSession(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func subscriptionEvent(eventType, subID, customerID, status string, meta map[string]string) *WebhookEvent {
	return &WebhookEvent{
		Type:                 eventType,
		StripeSubscriptionID: subID,
		StripeCustomerID:     customerID,
		Status:               status,
		CurrentPeriodStart:   time.Now(),
		CurrentPeriodEnd:     time.Now().AddDate(0, 1, 0),
		Metadata:             meta,
	}
}

func TestWebhookResolvesBySubscriptionID(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	sub, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	subID := "sub_123"
	_, err = repos.Subscription.Update(sub.ID, models.SubscriptionUpdate{StripeSubscriptionID: &subID})
	require.NoError(t, err)

	event := subscriptionEvent(EventSubscriptionUpdated, "sub_123", "", "trialing", map[string]string{"planId": plans.PlanPro})
	require.NoError(t, svc.HandleWebhookEvent(event))

	updated, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusTrialing, updated.Status)
	assert.Equal(t, plans.PlanPro, updated.PlanID)
}

func TestWebhookResolvesByCustomerID(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	sub, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	customerID := "cus_456"
	_, err = repos.Subscription.Update(sub.ID, models.SubscriptionUpdate{StripeCustomerID: &customerID})
	require.NoError(t, err)

	event := subscriptionEvent(EventSubscriptionUpdated, "sub_fresh", "cus_456", "past_due", nil)
	require.NoError(t, svc.HandleWebhookEvent(event))

	updated, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusPastDue, updated.Status)
	assert.Equal(t, "sub_fresh", updated.StripeSubscriptionID)
}

func TestWebhookResolvesByMetadataUserID(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	_, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)

	event := subscriptionEvent(EventSubscriptionCreated, "sub_meta", "cus_meta", "active",
		map[string]string{"userId": user.ID, "planId": plans.PlanEnterprise})
	require.NoError(t, svc.HandleWebhookEvent(event))

	updated, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanEnterprise, updated.PlanID)
	assert.Equal(t, "cus_meta", updated.StripeCustomerID)
}

func TestWebhookCreatesSubscriptionFromMetadata(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	// The user holds no subscription row yet; the event's metadata carries
	// the userId from checkout.
	event := subscriptionEvent(EventSubscriptionCreated, "sub_new", "cus_new", "active",
		map[string]string{"userId": user.ID, "planId": plans.PlanPro, "billingCycle": models.BillingCycleYearly})
	require.NoError(t, svc.HandleWebhookEvent(event))

	created, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanPro, created.PlanID)
	assert.Equal(t, models.SubscriptionStatusActive, created.Status)
	assert.Equal(t, models.BillingCycleYearly, created.BillingCycle)
	assert.Equal(t, "sub_new", created.StripeSubscriptionID)
	assert.Equal(t, "cus_new", created.StripeCustomerID)
	assert.Equal(t, event.CurrentPeriodEnd.Unix(), created.CurrentPeriodEnd.Unix())
}

func TestWebhookCreateWithUnknownUserIsDropped(t *testing.T) {
	svc, repos := newTestService(t, false)

	event := subscriptionEvent(EventSubscriptionCreated, "sub_new", "cus_new", "active",
		map[string]string{"userId": "nobody"})
	require.NoError(t, svc.HandleWebhookEvent(event))

	_, err := repos.Subscription.GetByUserID("nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWebhookUnmatchedEventIsDropped(t *testing.T) {
	svc, _ := newTestService(t, false)

	event := subscriptionEvent(EventSubscriptionUpdated, "sub_ghost", "cus_ghost", "active", nil)
	assert.NoError(t, svc.HandleWebhookEvent(event))
}

func TestWebhookUnknownStatusPermissive(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	sub, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	subID := "sub_odd"
	_, err = repos.Subscription.Update(sub.ID, models.SubscriptionUpdate{StripeSubscriptionID: &subID})
	require.NoError(t, err)

	event := subscriptionEvent(EventSubscriptionUpdated, "sub_odd", "", "paused", nil)
	require.NoError(t, svc.HandleWebhookEvent(event))

	updated, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, updated.Status)
}

func TestWebhookUnknownStatusStrict(t *testing.T) {
	svc, repos := newTestService(t, true)
	user := newTestUser(t, repos)

	sub, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	subID := "sub_odd"
	_, err = repos.Subscription.Update(sub.ID, models.SubscriptionUpdate{StripeSubscriptionID: &subID})
	require.NoError(t, err)

	event := subscriptionEvent(EventSubscriptionUpdated, "sub_odd", "", "paused", nil)
	assert.Error(t, svc.HandleWebhookEvent(event))

	updated, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, updated.Status)
	assert.Equal(t, plans.PlanStarter, updated.PlanID)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	sub, err := svc.StartFreePlan(user.ID)
	require.NoError(t, err)
	subID := "sub_replay"
	_, err = repos.Subscription.Update(sub.ID, models.SubscriptionUpdate{StripeSubscriptionID: &subID})
	require.NoError(t, err)

	event := subscriptionEvent(EventSubscriptionUpdated, "sub_replay", "", "active", map[string]string{"planId": plans.PlanPro})
	require.NoError(t, svc.HandleWebhookEvent(event))
	first, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.HandleWebhookEvent(event))
	second, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.PlanID, second.PlanID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.StripeSubscriptionID, second.StripeSubscriptionID)
}

func TestWebhookSubscriptionDeletedRevertsToStarter(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	_, err := svc.InitiateUpgrade(context.Background(), user, plans.PlanPro, models.BillingCycleMonthly)
	require.NoError(t, err)
	sub, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)

	event := &WebhookEvent{
		Type:                 EventSubscriptionDeleted,
		StripeSubscriptionID: sub.StripeSubscriptionID,
	}
	require.NoError(t, svc.HandleWebhookEvent(event))

	updated, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCanceled, updated.Status)
	assert.Equal(t, plans.PlanStarter, updated.PlanID)
	assert.False(t, updated.CancelAtPeriodEnd)
}

func TestWebhookInvoicePaidAppendsOnce(t *testing.T) {
	svc, repos := newTestService(t, false)
	user := newTestUser(t, repos)

	_, err := svc.InitiateUpgrade(context.Background(), user, plans.PlanPro, models.BillingCycleMonthly)
	require.NoError(t, err)
	sub, err := repos.Subscription.GetByUserID(user.ID)
	require.NoError(t, err)

	event := &WebhookEvent{
		Type:             EventInvoicePaid,
		StripeInvoiceID:  "in_001",
		StripeCustomerID: sub.StripeCustomerID,
		AmountPaid:       2900,
		Currency:         "eur",
	}
	require.NoError(t, svc.HandleWebhookEvent(event))
	require.NoError(t, svc.HandleWebhookEvent(event))

	invoices, err := repos.Invoice.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Pro - Mensuel", invoices[0].Description)
	assert.Equal(t, int64(2900), invoices[0].AmountPaid)
	assert.Equal(t, models.InvoiceStatusPaid, invoices[0].Status)
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		known bool
	}{
		{"active", models.SubscriptionStatusActive, true},
		{"trialing", models.SubscriptionStatusTrialing, true},
		{"past_due", models.SubscriptionStatusPastDue, true},
		{"canceled", models.SubscriptionStatusCanceled, true},
		{"incomplete", models.SubscriptionStatusIncomplete, true},
		{"ACTIVE", models.SubscriptionStatusActive, true},
		{"paused", models.SubscriptionStatusActive, false},
		{"", models.SubscriptionStatusActive, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, known := MapStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}
