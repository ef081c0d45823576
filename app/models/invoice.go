package models

import "time"

const (
	InvoiceStatusPaid  = "paid"
	InvoiceStatusOpen  = "open"
	InvoiceStatusVoid  = "void"
	InvoiceStatusDraft = "draft"
)

// Invoice is an append-only payment record.
type Invoice struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	SubscriptionID  string     `json:"subscriptionId"`
	StripeInvoiceID string     `json:"stripeInvoiceId"`
	AmountPaid      int64      `json:"amountPaid"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	Description     string     `json:"description"`
	PaidAt          *time.Time `json:"paidAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}
