package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/billing"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/plans"
)

type checkoutRequest struct {
	PlanID       string `json:"planId"`
	BillingCycle string `json:"billingCycle"`
}

// HandleListPlans returns the static plan catalog.
func HandleListPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plans": plans.Catalog})
}

// HandleGetSubscription returns the caller's subscription, the resolved plan
// and live usage against its limits.
func HandleGetSubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	repos := repository.GetGlobalRepositories()

	var subView fiber.Map
	planID := plans.PlanStarter
	sub, err := repos.Subscription.GetByUserID(user.ID)
	if err == nil {
		planID = sub.PlanID
		subView = fiber.Map{
			"id":                sub.ID,
			"planId":            sub.PlanID,
			"status":            sub.Status,
			"billingCycle":      sub.BillingCycle,
			"currentPeriodEnd":  sub.CurrentPeriodEnd,
			"cancelAtPeriodEnd": sub.CancelAtPeriodEnd,
			"trialEnd":          sub.TrialEnd,
		}
	} else if !isNotFound(err) {
		return errInternal(c)
	}
	plan := plans.GetPlan(planID)

	docs, err := repos.Document.List()
	if err != nil {
		return errInternal(c)
	}
	users, err := repos.User.List()
	if err != nil {
		return errInternal(c)
	}
	invoices, err := repos.Invoice.ListByUser(user.ID)
	if err != nil {
		return errInternal(c)
	}
	if len(invoices) > 10 {
		invoices = invoices[:10]
	}

	return c.JSON(fiber.Map{
		"subscription": subView,
		"plan": fiber.Map{
			"id":           plan.ID,
			"name":         plan.Name,
			"priceMonthly": plan.PriceMonthly,
			"priceYearly":  plan.PriceYearly,
			"limits":       plan.Limits,
			"features":     plan.Features,
		},
		"usage":    plans.ComputeUsage(docs, users, plan),
		"invoices": invoices,
	})
}

// HandleCheckout starts a plan change: synchronous for starter, hosted
// checkout or demo upgrade for paid plans.
func HandleCheckout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}

	result, err := billing.NewServiceDefault().InitiateUpgrade(c.Context(), user, req.PlanID, req.BillingCycle)
	if err != nil {
		log.Printf("[Billing] checkout failed for user %s: %v", user.ID, err)
		return jsonError(c, fiber.StatusBadGateway, "billing_provider", "Le prestataire de paiement est indisponible")
	}

	if result.Demo || result.Free {
		recordActivity(user.ID, "Abonnement modifié", plans.GetPlan(req.PlanID).Name, models.TARGET_TYPE_SETTINGS)
	}

	return c.JSON(result)
}

// HandlePortal opens the provider's billing portal for the caller.
func HandlePortal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	portalURL, err := billing.NewServiceDefault().CreatePortalSession(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, billing.ErrNotConfigured) || isNotFound(err) {
			return errValidation(c, "Aucun abonnement facturé à gérer")
		}
		log.Printf("[Billing] portal failed for user %s: %v", user.ID, err)
		return jsonError(c, fiber.StatusBadGateway, "billing_provider", "Le prestataire de paiement est indisponible")
	}

	return c.JSON(fiber.Map{"url": portalURL})
}

// HandleWebhook ingests provider webhook events. The endpoint is
// unauthenticated; the signature header is the only trust anchor, and it is
// only enforced when a secret is configured.
func HandleWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")
	if err := billing.VerifyWebhookSignature(payload, c.Get("Stripe-Signature"), secret); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_signature", "Signature du webhook invalide")
	}

	event, err := billing.ParseWebhookEvent(payload)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_payload", "Événement illisible")
	}

	if err := billing.NewServiceDefault().HandleWebhookEvent(event); err != nil {
		log.Printf("[Billing] webhook %s rejected: %v", event.Type, err)
		return jsonError(c, fiber.StatusBadRequest, "webhook_rejected", "Événement rejeté")
	}

	return c.JSON(fiber.Map{"received": true})
}
