// Package access содержит проверку членства, правила доступа, квоты тарифов
// и валидацию диапазонов дат. Правила - чистые функции над Request,
// вся работа с БД собрана в resolver.go.
package access

import (
	"errors"
	"fmt"

	"taskify_backend/internal/models"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ErrNoMember - у пользователя нет Member в данном рабочем пространстве.
// Для правил это означает отказ, а не ошибку сервера.
var ErrNoMember = errors.New("user is not a member of the workspace")

// ResolveWorkspace находит рабочее пространство, которому принадлежит ресурс.
// Workspace -> сам; Project -> workspace; Team/Task -> project -> workspace;
// Comment/CommentReply -> project -> workspace.
func ResolveWorkspace(db *gorm.DB, resource any) (*models.Workspace, error) {
	var projectID string

	switch r := resource.(type) {
	case *models.Workspace:
		return r, nil
	case *models.Project:
		return findWorkspace(db, r.WorkspaceID)
	case *models.Team:
		projectID = r.ProjectID
	case *models.Task:
		projectID = r.ProjectID
	case *models.Comment:
		projectID = r.ProjectID
	case *models.CommentReply:
		var comment models.Comment
		if err := db.Select("id", "project_id").First(&comment, "id = ?", r.CommentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCommentNotFound
			}
			return nil, err
		}
		projectID = comment.ProjectID
	default:
		return nil, fmt.Errorf("access: cannot resolve workspace for %T", resource)
	}

	var project models.Project
	if err := db.Select("id", "workspace_id").First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return findWorkspace(db, project.WorkspaceID)
}

// ResolveMember возвращает Member пользователя в рабочем пространстве или ErrNoMember.
func ResolveMember(db *gorm.DB, userID, workspaceID string) (*models.Member, error) {
	var member models.Member
	err := db.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMember
		}
		return nil, err
	}
	return &member, nil
}

// Authorize собирает Request для пользователя и ресурса и проверяет правила.
// Возвращает Request, чтобы сервис мог переиспользовать найденные
// Workspace и Member.
func Authorize(db *gorm.DB, user *models.User, op Operation, resource any, rules ...Rule) (*Request, error) {
	req := &Request{User: user, Op: op, Resource: resource}

	if resolvable(resource) {
		workspace, err := ResolveWorkspace(db, resource)
		if err != nil {
			return nil, err
		}
		req.Workspace = workspace

		member, err := ResolveMember(db, user.ID, workspace.ID)
		switch {
		case err == nil:
			req.Member = member
		case !errors.Is(err, ErrNoMember):
			return nil, err
		}
	}

	if err := Evaluate(req, rules...); err != nil {
		return req, err
	}
	return req, nil
}

func resolvable(resource any) bool {
	switch resource.(type) {
	case *models.Workspace, *models.Project, *models.Team, *models.Task, *models.Comment, *models.CommentReply:
		return true
	}
	return false
}

func findWorkspace(db *gorm.DB, id string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := db.First(&workspace, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}
