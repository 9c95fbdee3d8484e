package access

import (
	"taskify_backend/internal/models"
	"taskify_backend/pkg/apperrors"
)

var planProjectLimits = map[models.SubscriptionPlan]int{
	models.PlanBasic:      3,
	models.PlanPremium:    7,
	models.PlanEnterprise: 15,
}

// ProjectLimit - максимум проектов в рабочем пространстве для тарифа.
// Неизвестный тариф считается basic.
func ProjectLimit(plan models.SubscriptionPlan) int {
	if limit, ok := planProjectLimits[plan]; ok {
		return limit
	}
	return planProjectLimits[models.PlanBasic]
}

// CheckProjectQuota отказывает, когда проектов уже limit или больше.
func CheckProjectQuota(plan models.SubscriptionPlan, existing int64) error {
	limit := ProjectLimit(plan)
	if existing >= int64(limit) {
		return apperrors.ErrPlanLimitExceeded(string(plan), limit)
	}
	return nil
}

// CheckCapacity отказывает, когда счетчик участников достиг вместимости.
func CheckCapacity(current, capacity int) error {
	if current >= capacity {
		return apperrors.ErrWorkspaceFull
	}
	return nil
}
