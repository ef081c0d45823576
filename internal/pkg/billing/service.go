package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/plans"
)

// ErrNotConfigured is returned when an operation needs the payment provider
// but no credentials are present.
var ErrNotConfigured = errors.New("billing provider not configured")

// demoPrefix marks locally synthesized provider references.
const demoPrefix = "demo_"

// Service owns the subscription lifecycle: the free plan row every account
// gets, upgrades through hosted checkout (or a local demo path when no
// provider is configured), and reconciliation of provider webhooks.
type Service struct {
	subscriptions repository.SubscriptionRepository
	invoices      repository.InvoiceRepository
	users         repository.UserRepository
	stripe        *StripeClient
	strict        bool
	appBaseURL    string
}

// NewService wires a billing service over explicit dependencies.
func NewService(subs repository.SubscriptionRepository, invoices repository.InvoiceRepository, users repository.UserRepository, stripe *StripeClient, strict bool) *Service {
	return &Service{
		subscriptions: subs,
		invoices:      invoices,
		users:         users,
		stripe:        stripe,
		strict:        strict,
		appBaseURL:    env.GetEnv("APP_BASE_URL", "http://localhost:3000"),
	}
}

// NewServiceDefault builds the service from the global repositories and the
// environment. Strict webhook mode rejects events whose status we do not
// recognize instead of defaulting them to active.
func NewServiceDefault() *Service {
	repos := repository.GetGlobalRepositories()
	strict := strings.EqualFold(env.GetEnv("BILLING_WEBHOOK_STRICT", "false"), "true")
	return NewService(repos.Subscription, repos.Invoice, repos.User, NewStripeClient(), strict)
}

// StartFreePlan ensures the user holds a subscription row, creating a starter
// one when none exists. Calling it twice is a no-op.
func (s *Service) StartFreePlan(userID string) (*models.Subscription, error) {
	existing, err := s.subscriptions.GetByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	sub := &models.Subscription{
		ID:                 uuid.NewString(),
		UserID:             userID,
		PlanID:             plans.PlanStarter,
		Status:             models.SubscriptionStatusActive,
		BillingCycle:       models.BillingCycleMonthly,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 0, 30),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.subscriptions.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// InitiateUpgrade moves a user towards the requested plan. Downgrading to
// starter happens synchronously in place. A paid plan goes through hosted
// checkout when the provider is configured, otherwise the subscription is
// upgraded locally with demo provider references.
func (s *Service) InitiateUpgrade(ctx context.Context, user *models.User, planID, billingCycle string) (*CheckoutResult, error) {
	plan := plans.GetPlan(planID)
	if billingCycle != models.BillingCycleYearly {
		billingCycle = models.BillingCycleMonthly
	}

	sub, err := s.StartFreePlan(user.ID)
	if err != nil {
		return nil, err
	}

	if !plan.IsPaid() {
		if err := s.applyStarter(sub.ID); err != nil {
			return nil, err
		}
		return &CheckoutResult{Free: true, RedirectURL: "/billing"}, nil
	}

	priceID := plan.StripePriceID(billingCycle)
	if !s.stripe.IsConfigured() || priceID == "" {
		if err := s.applyDemoUpgrade(sub, user, plan.ID, billingCycle); err != nil {
			return nil, err
		}
		return &CheckoutResult{Demo: true, RedirectURL: "/billing?demo=1"}, nil
	}

	customerID := sub.StripeCustomerID
	if customerID == "" || strings.HasPrefix(customerID, demoPrefix) {
		customerID, err = s.stripe.CreateCustomer(ctx, user.Email, user.Name, user.ID)
		if err != nil {
			return nil, err
		}
		if _, err := s.subscriptions.Update(sub.ID, models.SubscriptionUpdate{StripeCustomerID: &customerID}); err != nil {
			return nil, err
		}
	}

	checkoutURL, err := s.stripe.CreateCheckoutSession(ctx, customerID, priceID, user.ID, plan.ID, billingCycle,
		s.appBaseURL+"/billing?success=1", s.appBaseURL+"/billing?canceled=1")
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{URL: checkoutURL}, nil
}

// CreatePortalSession opens the provider's self-service portal for the user.
func (s *Service) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	sub, err := s.subscriptions.GetByUserID(userID)
	if err != nil {
		return "", err
	}
	if !s.stripe.IsConfigured() || sub.StripeCustomerID == "" || strings.HasPrefix(sub.StripeCustomerID, demoPrefix) {
		return "", ErrNotConfigured
	}
	return s.stripe.CreatePortalSession(ctx, sub.StripeCustomerID, s.appBaseURL+"/billing")
}

// HandleWebhookEvent reconciles one provider event against local state.
// Events that cannot be matched to a subscription are logged and dropped so
// the provider does not retry them forever.
func (s *Service) HandleWebhookEvent(event *WebhookEvent) error {
	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		return s.applySubscriptionEvent(event)
	case EventSubscriptionDeleted:
		return s.applySubscriptionDeleted(event)
	case EventInvoicePaid:
		return s.applyInvoicePaid(event)
	default:
		log.Printf("[Billing] ignoring webhook event type %q", event.Type)
		return nil
	}
}

func (s *Service) applySubscriptionEvent(event *WebhookEvent) error {
	sub, err := s.resolveSubscription(event)
	if err != nil {
		return err
	}
	if sub == nil {
		return s.createFromEvent(event)
	}

	status, known := MapStatus(event.Status)
	if !known {
		if s.strict {
			return fmt.Errorf("unrecognized subscription status %q", event.Status)
		}
		log.Printf("[Billing] unrecognized subscription status %q, treating as active", event.Status)
	}

	update := models.SubscriptionUpdate{
		Status:            &status,
		CancelAtPeriodEnd: &event.CancelAtPeriodEnd,
		TrialEnd:          &event.TrialEnd,
	}
	if event.StripeSubscriptionID != "" {
		update.StripeSubscriptionID = &event.StripeSubscriptionID
	}
	if event.StripeCustomerID != "" {
		update.StripeCustomerID = &event.StripeCustomerID
	}
	if planID, ok := event.Metadata["planId"]; ok && planID != "" {
		resolved := plans.GetPlan(planID).ID
		update.PlanID = &resolved
	}
	if cycle, ok := event.Metadata["billingCycle"]; ok && (cycle == models.BillingCycleMonthly || cycle == models.BillingCycleYearly) {
		update.BillingCycle = &cycle
	}
	if !event.CurrentPeriodStart.IsZero() {
		update.CurrentPeriodStart = &event.CurrentPeriodStart
	}
	if !event.CurrentPeriodEnd.IsZero() {
		update.CurrentPeriodEnd = &event.CurrentPeriodEnd
	}

	_, err = s.subscriptions.Update(sub.ID, update)
	return err
}

func (s *Service) applySubscriptionDeleted(event *WebhookEvent) error {
	sub, err := s.resolveSubscription(event)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Printf("[Billing] webhook %s: no matching subscription, dropping", event.Type)
		return nil
	}

	canceled := models.SubscriptionStatusCanceled
	starter := plans.PlanStarter
	off := false
	_, err = s.subscriptions.Update(sub.ID, models.SubscriptionUpdate{
		Status:            &canceled,
		PlanID:            &starter,
		CancelAtPeriodEnd: &off,
	})
	return err
}

func (s *Service) applyInvoicePaid(event *WebhookEvent) error {
	sub, err := s.resolveSubscription(event)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Printf("[Billing] webhook invoice.paid: no matching subscription, dropping")
		return nil
	}

	// Providers retry webhooks; the invoice id dedupes replays.
	if event.StripeInvoiceID != "" {
		existing, err := s.invoices.ListByUser(sub.UserID)
		if err != nil {
			return err
		}
		for _, inv := range existing {
			if inv.StripeInvoiceID == event.StripeInvoiceID {
				return nil
			}
		}
	}

	now := time.Now()
	inv := &models.Invoice{
		ID:              uuid.NewString(),
		UserID:          sub.UserID,
		SubscriptionID:  sub.ID,
		StripeInvoiceID: event.StripeInvoiceID,
		AmountPaid:      event.AmountPaid,
		Currency:        event.Currency,
		Status:          models.InvoiceStatusPaid,
		Description:     invoiceDescription(sub.PlanID, sub.BillingCycle),
		PaidAt:          &now,
		CreatedAt:       now,
	}
	if inv.Currency == "" {
		inv.Currency = "eur"
	}
	return s.invoices.Create(inv)
}

// createFromEvent persists a subscription for a user the provider knows
// about but we do not, keyed by the userId the checkout metadata carries.
// Events naming no known user are logged and dropped so the provider does
// not retry them forever.
func (s *Service) createFromEvent(event *WebhookEvent) error {
	userID := event.Metadata["userId"]
	if userID == "" {
		log.Printf("[Billing] webhook %s: no matching subscription and no userId metadata, dropping", event.Type)
		return nil
	}
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("[Billing] webhook %s: metadata userId %q matches no user, dropping", event.Type, userID)
			return nil
		}
		return err
	}

	status, known := MapStatus(event.Status)
	if !known {
		if s.strict {
			return fmt.Errorf("unrecognized subscription status %q", event.Status)
		}
		log.Printf("[Billing] unrecognized subscription status %q, treating as active", event.Status)
	}

	cycle := models.BillingCycleMonthly
	if event.Metadata["billingCycle"] == models.BillingCycleYearly {
		cycle = models.BillingCycleYearly
	}

	now := time.Now()
	sub := &models.Subscription{
		ID:                   uuid.NewString(),
		UserID:               userID,
		PlanID:               plans.GetPlan(event.Metadata["planId"]).ID,
		Status:               status,
		BillingCycle:         cycle,
		StripeCustomerID:     event.StripeCustomerID,
		StripeSubscriptionID: event.StripeSubscriptionID,
		CurrentPeriodStart:   event.CurrentPeriodStart,
		CurrentPeriodEnd:     event.CurrentPeriodEnd,
		CancelAtPeriodEnd:    event.CancelAtPeriodEnd,
		TrialEnd:             event.TrialEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if sub.CurrentPeriodStart.IsZero() {
		sub.CurrentPeriodStart = now
	}
	if sub.CurrentPeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = now.AddDate(0, 0, 30)
	}
	return s.subscriptions.Create(sub)
}

// resolveSubscription matches an event to a local row: by provider
// subscription id first, then customer id, then the userId carried in the
// event metadata. A nil result with nil error means no match.
func (s *Service) resolveSubscription(event *WebhookEvent) (*models.Subscription, error) {
	if event.StripeSubscriptionID != "" {
		sub, err := s.subscriptions.GetByStripeSubscriptionID(event.StripeSubscriptionID)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	if event.StripeCustomerID != "" {
		sub, err := s.subscriptions.GetByStripeCustomerID(event.StripeCustomerID)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	if userID, ok := event.Metadata["userId"]; ok && userID != "" {
		sub, err := s.subscriptions.GetByUserID(userID)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func (s *Service) applyStarter(subID string) error {
	starter := plans.PlanStarter
	active := models.SubscriptionStatusActive
	monthly := models.BillingCycleMonthly
	off := false
	cleared := ""
	now := time.Now()
	end := now.AddDate(0, 0, 30)
	_, err := s.subscriptions.Update(subID, models.SubscriptionUpdate{
		PlanID:               &starter,
		Status:               &active,
		BillingCycle:         &monthly,
		StripeSubscriptionID: &cleared,
		CancelAtPeriodEnd:    &off,
		CurrentPeriodStart:   &now,
		CurrentPeriodEnd:     &end,
	})
	return err
}

func (s *Service) applyDemoUpgrade(sub *models.Subscription, user *models.User, planID, billingCycle string) error {
	now := time.Now()
	end := now.AddDate(0, 0, 30)
	if billingCycle == models.BillingCycleYearly {
		end = now.AddDate(0, 0, 365)
	}

	active := models.SubscriptionStatusActive
	customerID := sub.StripeCustomerID
	if customerID == "" {
		customerID = demoPrefix + "cus_" + user.ID
	}
	demoSubID := demoPrefix + "sub_" + uuid.NewString()
	off := false
	_, err := s.subscriptions.Update(sub.ID, models.SubscriptionUpdate{
		PlanID:               &planID,
		Status:               &active,
		BillingCycle:         &billingCycle,
		StripeCustomerID:     &customerID,
		StripeSubscriptionID: &demoSubID,
		CancelAtPeriodEnd:    &off,
		CurrentPeriodStart:   &now,
		CurrentPeriodEnd:     &end,
	})
	return err
}

func invoiceDescription(planID, billingCycle string) string {
	cycle := "Mensuel"
	if billingCycle == models.BillingCycleYearly {
		cycle = "Annuel"
	}
	return fmt.Sprintf("%s - %s", plans.GetPlan(planID).Name, cycle)
}
