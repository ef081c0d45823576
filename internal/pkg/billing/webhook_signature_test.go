package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(payload []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + string(payload)))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignatureValid(t *testing.T) {
	payload := []byte(`{"type":"invoice.paid"}`)
	sig := signPayload(payload, "1725000000", "whsec_test")
	header := fmt.Sprintf("t=1725000000,v1=%s", sig)

	assert.NoError(t, VerifyWebhookSignature(payload, header, "whsec_test"))
}

func TestVerifyWebhookSignatureMultipleV1(t *testing.T) {
	payload := []byte(`{}`)
	good := signPayload(payload, "1725000000", "whsec_test")
	header := fmt.Sprintf("t=1725000000,v1=deadbeef,v1=%s", good)

	assert.NoError(t, VerifyWebhookSignature(payload, header, "whsec_test"))
}

func TestVerifyWebhookSignatureMismatch(t *testing.T) {
	payload := []byte(`{}`)
	sig := signPayload(payload, "1725000000", "whsec_other")
	header := fmt.Sprintf("t=1725000000,v1=%s", sig)

	assert.Error(t, VerifyWebhookSignature(payload, header, "whsec_test"))
}

func TestVerifyWebhookSignatureTamperedPayload(t *testing.T) {
	sig := signPayload([]byte(`{"a":1}`), "1725000000", "whsec_test")
	header := fmt.Sprintf("t=1725000000,v1=%s", sig)

	assert.Error(t, VerifyWebhookSignature([]byte(`{"a":2}`), header, "whsec_test"))
}

func TestVerifyWebhookSignatureSkippedWithoutSecret(t *testing.T) {
	assert.NoError(t, VerifyWebhookSignature([]byte(`{}`), "", ""))
	assert.NoError(t, VerifyWebhookSignature([]byte(`{}`), "garbage", ""))
}

func TestVerifyWebhookSignatureMalformedHeader(t *testing.T) {
	tests := []string{"", "v1=abc", "t=123", "nonsense"}
	for _, header := range tests {
		assert.Error(t, VerifyWebhookSignature([]byte(`{}`), header, "whsec_test"), "header %q", header)
	}
}

func TestParseWebhookEventSubscription(t *testing.T) {
	payload := []byte(`{
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_42",
			"customer": "cus_42",
			"status": "active",
			"cancel_at_period_end": true,
			"current_period_start": 1725000000,
			"current_period_end": 1727592000,
			"trial_end": 1726000000,
			"metadata": {"userId": "u1", "planId": "pro", "billingCycle": "monthly"},
			"items": {"data": [{"price": {"id": "price_pro_m"}}]}
		}}
	}`)

	event, err := ParseWebhookEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, EventSubscriptionUpdated, event.Type)
	assert.Equal(t, "sub_42", event.StripeSubscriptionID)
	assert.Equal(t, "cus_42", event.StripeCustomerID)
	assert.Equal(t, "active", event.Status)
	assert.True(t, event.CancelAtPeriodEnd)
	assert.Equal(t, int64(1725000000), event.CurrentPeriodStart.Unix())
	assert.Equal(t, int64(1727592000), event.CurrentPeriodEnd.Unix())
	require.NotNil(t, event.TrialEnd)
	assert.Equal(t, int64(1726000000), event.TrialEnd.Unix())
	assert.Equal(t, "price_pro_m", event.PriceID)
	assert.Equal(t, "u1", event.Metadata["userId"])
}

func TestParseWebhookEventInvoice(t *testing.T) {
	payload := []byte(`{
		"type": "invoice.paid",
		"data": {"object": {
			"id": "in_7",
			"customer": "cus_42",
			"amount_paid": 2900,
			"currency": "eur"
		}}
	}`)

	event, err := ParseWebhookEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "in_7", event.StripeInvoiceID)
	assert.Empty(t, event.StripeSubscriptionID)
	assert.Equal(t, int64(2900), event.AmountPaid)
	assert.Equal(t, "eur", event.Currency)
	assert.Nil(t, event.TrialEnd)
}

func TestParseWebhookEventMalformed(t *testing.T) {
	_, err := ParseWebhookEvent([]byte("not json"))
	assert.Error(t, err)
}
