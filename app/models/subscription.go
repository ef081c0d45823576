package models

import "time"

const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusTrialing   = "trialing"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusIncomplete = "incomplete"

	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// Subscription is the single billing row a user can hold. It is mutated in
// place over its lifetime and never hard-deleted (canceled in place).
type Subscription struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"userId"`
	PlanID               string     `json:"planId"`
	Status               string     `json:"status"`
	BillingCycle         string     `json:"billingCycle"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId"`
	CurrentPeriodStart   time.Time  `json:"currentPeriodStart"`
	CurrentPeriodEnd     time.Time  `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool       `json:"cancelAtPeriodEnd"`
	TrialEnd             *time.Time `json:"trialEnd"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// SubscriptionUpdate carries mutable subscription fields; nil leaves a field
// unchanged. TrialEnd uses a double pointer so it can be set to null.
type SubscriptionUpdate struct {
	PlanID               *string
	Status               *string
	BillingCycle         *string
	StripeCustomerID     *string
	StripeSubscriptionID *string
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    *bool
	TrialEnd             **time.Time
}
