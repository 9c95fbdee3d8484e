package access

import (
	"testing"

	"taskify_backend/internal/models"
	"taskify_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestProjectLimit(t *testing.T) {
	assert.Equal(t, 3, ProjectLimit(models.PlanBasic))
	assert.Equal(t, 7, ProjectLimit(models.PlanPremium))
	assert.Equal(t, 15, ProjectLimit(models.PlanEnterprise))
	assert.Equal(t, 3, ProjectLimit("unknown"))
}

func TestCheckProjectQuota(t *testing.T) {
	assert.NoError(t, CheckProjectQuota(models.PlanBasic, 2))

	err := CheckProjectQuota(models.PlanBasic, 3)
	appErr, ok := apperrors.AsAppError(err)
	if assert.True(t, ok) {
		assert.Equal(t, apperrors.CodePlanLimitExceeded, appErr.Code)
	}

	assert.NoError(t, CheckProjectQuota(models.PlanPremium, 3))
	assert.NoError(t, CheckProjectQuota(models.PlanPremium, 6))
	assert.Error(t, CheckProjectQuota(models.PlanPremium, 7))
	assert.NoError(t, CheckProjectQuota(models.PlanEnterprise, 14))
	assert.Error(t, CheckProjectQuota(models.PlanEnterprise, 15))
}

func TestCheckCapacity(t *testing.T) {
	assert.NoError(t, CheckCapacity(1, 2))
	assert.ErrorIs(t, CheckCapacity(2, 2), apperrors.ErrWorkspaceFull)
	assert.ErrorIs(t, CheckCapacity(3, 2), apperrors.ErrWorkspaceFull)
}
