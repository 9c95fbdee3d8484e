package services

import (
	"errors"

	"taskify_backend/internal/access"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// writeRules - правила, общие для всех изменяющих операций.
func writeRules(rules ...access.Rule) []access.Rule {
	return append([]access.Rule{access.ActiveUser, access.VerifiedUser}, rules...)
}

// authorize - access.Authorize с приведением ошибок БД к AppError.
func authorize(db *gorm.DB, user *models.User, op access.Operation, resource any, rules ...access.Rule) (*access.Request, error) {
	req, err := access.Authorize(db, user, op, resource, rules...)
	if err != nil {
		logger.CtxDebug(db.Statement.Context, "access denied", "user_id", user.ID, "reason", err.Error())
		return nil, asAppError(err)
	}
	return req, nil
}

// loadActor загружает пользователя из токена. Удаленный пользователь
// с действующим токеном получает 401.
func loadActor(db *gorm.DB, users repositories.UserRepository, userID string) (*models.User, error) {
	user, err := users.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// handleRepositoryError переводит sentinel-ошибки репозиториев в доменные.
// Конфликты уникальности сервисы обрабатывают сами: сообщение зависит от поля.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrWorkspaceNotFound):
		return apperrors.ErrWorkspaceNotFound
	case errors.Is(err, repositories.ErrMemberNotFound):
		return apperrors.ErrMemberNotInWorkspace
	case errors.Is(err, repositories.ErrProjectNotFound):
		return apperrors.ErrProjectNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return apperrors.ErrTeamNotFound
	case errors.Is(err, repositories.ErrTaskNotFound):
		return apperrors.ErrTaskNotFound
	case errors.Is(err, repositories.ErrCommentNotFound):
		return apperrors.ErrCommentNotFound
	case errors.Is(err, repositories.ErrReplyNotFound):
		return apperrors.ErrReplyNotFound
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.ErrCategoryNotFound
	case errors.Is(err, repositories.ErrRefreshTokenNotFound):
		return apperrors.ErrInvalidToken
	}
	return asAppError(err)
}

func asAppError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}

// conflictOr возвращает conflict при нарушении уникальности, иначе общую обработку.
func conflictOr(err error, conflict *apperrors.AppError) error {
	if repositories.IsUniqueViolation(err) {
		return conflict.WithError(err)
	}
	return handleRepositoryError(err)
}

// findWorkspaceMember находит Member по id и проверяет, что он из того же
// рабочего пространства, что и проект.
func findWorkspaceMember(db *gorm.DB, repo repositories.WorkspaceRepository, workspaceID, memberID string) (*models.Member, error) {
	member, err := repo.FindMemberByID(db, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.ErrMemberNotInThisWorkspace
		}
		return nil, apperrors.InternalError(err)
	}
	if member.WorkspaceID != workspaceID {
		return nil, apperrors.ErrMemberNotInThisWorkspace
	}
	return member, nil
}

func labelColorOrDefault(color string) string {
	if color == "" {
		return models.DefaultLabelColor
	}
	return color
}
