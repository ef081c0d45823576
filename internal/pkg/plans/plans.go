package plans

import (
	"fmt"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
)

const (
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Unlimited marks a dimension with no limit.
const Unlimited = -1

// Limits defines what a plan allows. A limit of -1 means unlimited.
type Limits struct {
	MaxDocuments     int   `json:"maxDocuments"`
	MaxStorageBytes  int64 `json:"maxStorageBytes"`
	MaxUsers         int   `json:"maxUsers"`
	AdvancedSearch   bool  `json:"advancedSearch"`
	AutoImport       bool  `json:"autoImport"`
	AccessControl    bool  `json:"accessControl"`
	APIAccess        bool  `json:"apiAccess"`
	SSO              bool  `json:"sso"`
	Audit            bool  `json:"audit"`
	PrioritySupport  bool  `json:"prioritySupport"`
	DedicatedSupport bool  `json:"dedicatedSupport"`
}

// Plan is a static catalog entry; plans are never persisted.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceMonthly int64    `json:"priceMonthly"` // cents (EUR)
	PriceYearly  int64    `json:"priceYearly"`  // cents (EUR), per year
	Limits       Limits   `json:"limits"`
	Features     []string `json:"features"`
	Highlighted  bool     `json:"highlighted"`
}

// StripePriceID returns the external price reference for a billing cycle,
// read from the environment so price rotation needs no redeploy.
func (p *Plan) StripePriceID(billingCycle string) string {
	switch p.ID {
	case PlanPro:
		if billingCycle == "yearly" {
			return env.GetEnv("STRIPE_PRO_YEARLY", "")
		}
		return env.GetEnv("STRIPE_PRO_MONTHLY", "")
	case PlanEnterprise:
		if billingCycle == "yearly" {
			return env.GetEnv("STRIPE_ENTERPRISE_YEARLY", "")
		}
		return env.GetEnv("STRIPE_ENTERPRISE_MONTHLY", "")
	default:
		return ""
	}
}

// Catalog lists all plans, cheapest first.
var Catalog = []Plan{
	{
		ID:           PlanStarter,
		Name:         "Starter",
		Description:  "Pour les indépendants et petites équipes",
		PriceMonthly: 0,
		PriceYearly:  0,
		Limits: Limits{
			MaxDocuments:    50,
			MaxStorageBytes: 500 * 1024 * 1024,
			MaxUsers:        1,
		},
		Features: []string{
			"50 documents",
			"500 MB de stockage",
			"1 utilisateur",
			"Recherche basique",
			"Support email",
		},
	},
	{
		ID:           PlanPro,
		Name:         "Pro",
		Description:  "Pour les PME et équipes en croissance",
		PriceMonthly: 2900,
		PriceYearly:  27900,
		Limits: Limits{
			MaxDocuments:    Unlimited,
			MaxStorageBytes: 50 * 1024 * 1024 * 1024,
			MaxUsers:        10,
			AdvancedSearch:  true,
			AutoImport:      true,
			AccessControl:   true,
			PrioritySupport: true,
		},
		Features: []string{
			"Documents illimités",
			"50 GB de stockage",
			"10 utilisateurs",
			"Recherche avancée",
			"Import automatique",
			"Contrôle d'accès",
			"Support prioritaire",
		},
		Highlighted: true,
	},
	{
		ID:           PlanEnterprise,
		Name:         "Enterprise",
		Description:  "Pour les grandes organisations",
		PriceMonthly: 9900,
		PriceYearly:  95900,
		Limits: Limits{
			MaxDocuments:     Unlimited,
			MaxStorageBytes:  500 * 1024 * 1024 * 1024,
			MaxUsers:         Unlimited,
			AdvancedSearch:   true,
			AutoImport:       true,
			AccessControl:    true,
			APIAccess:        true,
			SSO:              true,
			Audit:            true,
			PrioritySupport:  true,
			DedicatedSupport: true,
		},
		Features: []string{
			"Documents illimités",
			"500 GB de stockage",
			"Utilisateurs illimités",
			"API & intégrations",
			"SSO & SAML",
			"Audit & conformité",
			"Support dédié 24/7",
		},
	},
}

// GetPlan resolves a plan id, falling back to starter for anything unknown.
func GetPlan(planID string) *Plan {
	for i := range Catalog {
		if Catalog[i].ID == planID {
			return &Catalog[i]
		}
	}
	return &Catalog[0]
}

// IsPaid reports whether the plan requires payment.
func (p *Plan) IsPaid() bool {
	return p.ID != PlanStarter
}

// FormatPrice renders a cent amount as whole euros.
func FormatPrice(cents int64) string {
	if cents == 0 {
		return "0"
	}
	return fmt.Sprintf("%d", cents/100)
}
