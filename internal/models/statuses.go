package models

import "strings"

type SubscriptionPlan string
type MemberRole string

const (
	PlanBasic      SubscriptionPlan = "basic"
	PlanPremium    SubscriptionPlan = "premium"
	PlanEnterprise SubscriptionPlan = "enterprise"

	RoleViewer MemberRole = "viewer"
	RoleEditor MemberRole = "editor"
)

// planAliases - старые названия тарифов, которые принимает API.
var planAliases = map[string]SubscriptionPlan{
	"basic":      PlanBasic,
	"starter":    PlanBasic,
	"premium":    PlanPremium,
	"pro":        PlanPremium,
	"enterprise": PlanEnterprise,
	"ultimate":   PlanEnterprise,
}

// ParsePlan нормализует название тарифа (регистр и алиасы).
func ParsePlan(value string) (SubscriptionPlan, bool) {
	plan, ok := planAliases[strings.ToLower(strings.TrimSpace(value))]
	return plan, ok
}

func (r MemberRole) Valid() bool {
	return r == RoleViewer || r == RoleEditor
}
