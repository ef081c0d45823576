package billing

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/OussamaBoujdig/archivio1/app/models"
)

// Webhook event types the reconciler understands. Anything else is
// acknowledged and ignored.
const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaid         = "invoice.paid"
)

// WebhookEvent is the normalized form of a provider webhook payload.
type WebhookEvent struct {
	Type                 string
	StripeSubscriptionID string
	StripeCustomerID     string
	StripeInvoiceID      string
	Status               string
	PriceID              string
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
	CancelAtPeriodEnd    bool
	TrialEnd             *time.Time
	AmountPaid           int64
	Currency             string
	Metadata             map[string]string
}

// ParseWebhookEvent decodes a Stripe-shaped event envelope into the
// normalized form used by the reconciler.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var raw struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID                 string            `json:"id"`
				Customer           string            `json:"customer"`
				Status             string            `json:"status"`
				CancelAtPeriodEnd  bool              `json:"cancel_at_period_end"`
				CurrentPeriodStart int64             `json:"current_period_start"`
				CurrentPeriodEnd   int64             `json:"current_period_end"`
				TrialEnd           int64             `json:"trial_end"`
				AmountPaid         int64             `json:"amount_paid"`
				Currency           string            `json:"currency"`
				Metadata           map[string]string `json:"metadata"`
				Items              struct {
					Data []struct {
						Price struct {
							ID string `json:"id"`
						} `json:"price"`
					} `json:"data"`
				} `json:"items"`
			} `json:"object"`
		} `json:"data"`
	}

	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	obj := raw.Data.Object
	event := &WebhookEvent{
		Type:              strings.TrimSpace(raw.Type),
		StripeCustomerID:  obj.Customer,
		Status:            obj.Status,
		CancelAtPeriodEnd: obj.CancelAtPeriodEnd,
		AmountPaid:        obj.AmountPaid,
		Currency:          obj.Currency,
		Metadata:          obj.Metadata,
	}

	switch event.Type {
	case EventInvoicePaid:
		event.StripeInvoiceID = obj.ID
	default:
		event.StripeSubscriptionID = obj.ID
	}

	if obj.CurrentPeriodStart > 0 {
		event.CurrentPeriodStart = time.Unix(obj.CurrentPeriodStart, 0)
	}
	if obj.CurrentPeriodEnd > 0 {
		event.CurrentPeriodEnd = time.Unix(obj.CurrentPeriodEnd, 0)
	}
	if obj.TrialEnd > 0 {
		t := time.Unix(obj.TrialEnd, 0)
		event.TrialEnd = &t
	}
	if len(obj.Items.Data) > 0 {
		event.PriceID = obj.Items.Data[0].Price.ID
	}

	return event, nil
}

// MapStatus translates the provider's status vocabulary onto the local enum.
// The second return reports whether the status was recognized; the fallback
// policy for unknown statuses belongs to the caller.
func MapStatus(external string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(external)) {
	case "active":
		return models.SubscriptionStatusActive, true
	case "trialing":
		return models.SubscriptionStatusTrialing, true
	case "past_due":
		return models.SubscriptionStatusPastDue, true
	case "canceled":
		return models.SubscriptionStatusCanceled, true
	case "incomplete":
		return models.SubscriptionStatusIncomplete, true
	default:
		return models.SubscriptionStatusActive, false
	}
}

// CheckoutResult describes the outcome of an upgrade request. Exactly one of
// the flags is meaningful: Free for a synchronous downgrade, Demo for a
// locally synthesized upgrade, otherwise URL carries the hosted checkout
// redirect.
type CheckoutResult struct {
	Free        bool   `json:"free,omitempty"`
	Demo        bool   `json:"demo,omitempty"`
	URL         string `json:"url,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}
