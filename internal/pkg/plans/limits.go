package plans

import (
	"errors"
	"fmt"

	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/utils"
)

// LimitCheck is the outcome of an admission check. Reason is only set when
// the action is denied.
type LimitCheck struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"`
	PlanID   string `json:"planId"`
	PlanName string `json:"planName"`
}

// Checker evaluates plan admission lazily at the moment of the gated action:
// a full scan per check, but no counter that can drift from the source of
// truth.
type Checker struct {
	subscriptions repository.SubscriptionRepository
	documents     repository.DocumentRepository
	users         repository.UserRepository
}

// NewChecker creates an admission checker over the given repositories.
func NewChecker(subs repository.SubscriptionRepository, docs repository.DocumentRepository, users repository.UserRepository) *Checker {
	return &Checker{subscriptions: subs, documents: docs, users: users}
}

// planFor resolves the user's current plan, defaulting to starter when no
// subscription exists.
func (c *Checker) planFor(userID string) (*Plan, error) {
	sub, err := c.subscriptions.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return GetPlan(PlanStarter), nil
		}
		return nil, err
	}
	return GetPlan(sub.PlanID), nil
}

// CheckDocumentLimit reports whether one more document fits the plan.
func (c *Checker) CheckDocumentLimit(userID string) (LimitCheck, error) {
	plan, err := c.planFor(userID)
	if err != nil {
		return LimitCheck{}, err
	}
	if plan.Limits.MaxDocuments == Unlimited {
		return allowed(plan), nil
	}

	count, err := c.documents.Count()
	if err != nil {
		return LimitCheck{}, err
	}
	if count >= plan.Limits.MaxDocuments {
		return LimitCheck{
			Allowed:  false,
			Reason:   fmt.Sprintf("Limite de %d documents atteinte. Passez au plan supérieur.", plan.Limits.MaxDocuments),
			PlanID:   plan.ID,
			PlanName: plan.Name,
		}, nil
	}
	return allowed(plan), nil
}

// CheckStorageLimit reports whether additionalBytes still fit the plan's
// storage limit.
func (c *Checker) CheckStorageLimit(userID string, additionalBytes int64) (LimitCheck, error) {
	plan, err := c.planFor(userID)
	if err != nil {
		return LimitCheck{}, err
	}

	total, err := c.documents.TotalSizeBytes()
	if err != nil {
		return LimitCheck{}, err
	}
	if total+additionalBytes > plan.Limits.MaxStorageBytes {
		return LimitCheck{
			Allowed:  false,
			Reason:   fmt.Sprintf("Limite de stockage atteinte (%s). Passez au plan supérieur.", utils.FormatBytes(plan.Limits.MaxStorageBytes)),
			PlanID:   plan.ID,
			PlanName: plan.Name,
		}, nil
	}
	return allowed(plan), nil
}

// CheckUserLimit reports whether one more user fits the plan.
func (c *Checker) CheckUserLimit(userID string) (LimitCheck, error) {
	plan, err := c.planFor(userID)
	if err != nil {
		return LimitCheck{}, err
	}
	if plan.Limits.MaxUsers == Unlimited {
		return allowed(plan), nil
	}

	count, err := c.users.Count()
	if err != nil {
		return LimitCheck{}, err
	}
	if count >= plan.Limits.MaxUsers {
		plural := ""
		if plan.Limits.MaxUsers > 1 {
			plural = "s"
		}
		return LimitCheck{
			Allowed:  false,
			Reason:   fmt.Sprintf("Limite de %d utilisateur%s atteinte. Passez au plan supérieur.", plan.Limits.MaxUsers, plural),
			PlanID:   plan.ID,
			PlanName: plan.Name,
		}, nil
	}
	return allowed(plan), nil
}

func allowed(plan *Plan) LimitCheck {
	return LimitCheck{Allowed: true, PlanID: plan.ID, PlanName: plan.Name}
}
