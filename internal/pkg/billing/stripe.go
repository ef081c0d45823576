package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeClient is a thin form-encoded client for the handful of payment
// endpoints we call. A nil secret key means the provider is not configured
// and callers should take the demo path instead.
type StripeClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewStripeClient builds a client from the environment. IsConfigured reports
// whether a secret key was present.
func NewStripeClient() *StripeClient {
	return &StripeClient{
		secretKey: env.GetEnv("STRIPE_SECRET_KEY", ""),
		baseURL:   env.GetEnv("STRIPE_API_BASE", stripeAPIBase),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeClientWith builds a client with explicit settings, for tests.
func NewStripeClientWith(secretKey, baseURL string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured reports whether a secret key is available.
func (s *StripeClient) IsConfigured() bool {
	return s != nil && s.secretKey != ""
}

// CreateCustomer registers a customer with the provider and returns its id.
func (s *StripeClient) CreateCustomer(ctx context.Context, email, name, userID string) (string, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)
	form.Set("metadata[userId]", userID)

	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postForm(ctx, "/customers", form, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CreateCheckoutSession opens a hosted checkout for a subscription price and
// returns the redirect URL.
func (s *StripeClient) CreateCheckoutSession(ctx context.Context, customerID, priceID, userID, planID, billingCycle, successURL, cancelURL string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("subscription_data[metadata][userId]", userID)
	form.Set("subscription_data[metadata][planId]", planID)
	form.Set("subscription_data[metadata][billingCycle]", billingCycle)

	var resp struct {
		URL string `json:"url"`
	}
	if err := s.postForm(ctx, "/checkout/sessions", form, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// CreatePortalSession opens the provider's self-service billing portal.
func (s *StripeClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", returnURL)

	var resp struct {
		URL string `json:"url"`
	}
	if err := s.postForm(ctx, "/billing_portal/sessions", form, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (s *StripeClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stripe %s returned %d: %s", path, resp.StatusCode, truncate(string(body), 200))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
