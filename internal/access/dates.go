package access

import (
	"time"

	"taskify_backend/pkg/apperrors"
)

// Now подменяется в тестах.
var Now = time.Now

// Naive отбрасывает часовой пояс и оставляет показания часов как есть.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ValidateCreate: начало не позже окончания, обе даты не в прошлом.
func ValidateCreate(start, end time.Time) error {
	s, e, now := Naive(start), Naive(end), Naive(Now())
	if s.After(e) {
		return apperrors.ErrStartAfterEnd
	}
	if s.Before(now) || e.Before(now) {
		return apperrors.ErrDateInPast
	}
	return nil
}

// ValidateUpdate проверяет на "прошлое" только переданные границы,
// а порядок - для итогового диапазона.
func ValidateUpdate(currentStart, currentEnd time.Time, newStart, newEnd *time.Time) error {
	now := Naive(Now())
	start, end := currentStart, currentEnd

	if newStart != nil {
		if Naive(*newStart).Before(now) {
			return apperrors.ErrDateInPast
		}
		start = *newStart
	}
	if newEnd != nil {
		if Naive(*newEnd).Before(now) {
			return apperrors.ErrDateInPast
		}
		end = *newEnd
	}
	if Naive(start).After(Naive(end)) {
		return apperrors.ErrStartAfterEnd
	}
	return nil
}

// ValidateWithinProject: задача не может начинаться или заканчиваться
// после окончания проекта.
func ValidateWithinProject(start, end, projectEnd time.Time) error {
	pe := Naive(projectEnd)
	if Naive(start).After(pe) || Naive(end).After(pe) {
		return apperrors.ErrOutOfProjectRange
	}
	return nil
}
