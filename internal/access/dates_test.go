package access

import (
	"testing"
	"time"

	"taskify_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return now }
	t.Cleanup(func() { Now = prev })
}

func TestNaive(t *testing.T) {
	almaty := time.FixedZone("ALMT", 5*60*60)
	local := time.Date(2030, 1, 1, 10, 0, 0, 0, almaty)
	utc := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, Naive(local).Equal(utc), "показания часов сохраняются, пояс отбрасывается")
}

func TestValidateCreate(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	assert.NoError(t, ValidateCreate(now.Add(time.Hour), now.Add(48*time.Hour)))
	assert.NoError(t, ValidateCreate(now.Add(time.Hour), now.Add(time.Hour)), "start == end допустимо")
	assert.ErrorIs(t, ValidateCreate(now.Add(48*time.Hour), now.Add(time.Hour)), apperrors.ErrStartAfterEnd)
	assert.ErrorIs(t, ValidateCreate(now.Add(-time.Hour), now.Add(time.Hour)), apperrors.ErrDateInPast)
}

func TestValidateUpdate(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	// Проект уже начался: старое начало в прошлом, но меняется только конец
	start := now.Add(-72 * time.Hour)
	end := now.Add(72 * time.Hour)
	newEnd := now.Add(96 * time.Hour)
	assert.NoError(t, ValidateUpdate(start, end, nil, &newEnd))

	pastEnd := now.Add(-time.Hour)
	assert.ErrorIs(t, ValidateUpdate(start, end, nil, &pastEnd), apperrors.ErrDateInPast)

	lateStart := now.Add(100 * time.Hour)
	assert.ErrorIs(t, ValidateUpdate(start, end, &lateStart, nil), apperrors.ErrStartAfterEnd)
}

func TestValidateWithinProject(t *testing.T) {
	projectEnd := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateWithinProject(projectEnd.AddDate(0, -1, 0), projectEnd, projectEnd))
	assert.ErrorIs(t, ValidateWithinProject(projectEnd.AddDate(0, -1, 0), projectEnd.AddDate(0, 0, 1), projectEnd), apperrors.ErrOutOfProjectRange)
	assert.ErrorIs(t, ValidateWithinProject(projectEnd.AddDate(0, 0, 1), projectEnd.AddDate(0, 0, 2), projectEnd), apperrors.ErrOutOfProjectRange)
}
