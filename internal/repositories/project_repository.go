package repositories

import (
	"errors"

	"taskify_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	ListByWorkspace(db *gorm.DB, workspaceID string) ([]models.Project, error)
	CountByWorkspace(db *gorm.DB, workspaceID string) (int64, error)
	ExistsByName(db *gorm.DB, name, excludeID string) (bool, error)
	Update(db *gorm.DB, project *models.Project) error
	// Delete удаляет проект вместе с командами, задачами и комментариями.
	Delete(db *gorm.DB, id string) error
	DeleteByWorkspace(db *gorm.DB, workspaceID string) error

	AddMembers(db *gorm.DB, project *models.Project, members []models.Member) error
	RemoveMember(db *gorm.DB, project *models.Project, member *models.Member) error
}

type projectRepository struct{}

func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(db *gorm.DB, project *models.Project) error {
	return translate(db.Create(project).Error, ErrProjectNotFound)
}

func (r *projectRepository) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	if err := db.Preload("Members.User").First(&project, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrProjectNotFound)
	}
	return &project, nil
}

func (r *projectRepository) ListByWorkspace(db *gorm.DB, workspaceID string) ([]models.Project, error) {
	projects := []models.Project{}
	err := db.Preload("Members.User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) CountByWorkspace(db *gorm.DB, workspaceID string) (int64, error) {
	var count int64
	err := db.Model(&models.Project{}).Where("workspace_id = ?", workspaceID).Count(&count).Error
	return count, err
}

func (r *projectRepository) ExistsByName(db *gorm.DB, name, excludeID string) (bool, error) {
	return exists(db.Model(&models.Project{}).Where("name = ?", name), excludeID)
}

func (r *projectRepository) Update(db *gorm.DB, project *models.Project) error {
	return translate(db.Omit(clause.Associations).Save(project).Error, ErrProjectNotFound)
}

func (r *projectRepository) Delete(db *gorm.DB, id string) error {
	var teamIDs, taskIDs, commentIDs []string
	if err := db.Model(&models.Team{}).Where("project_id = ?", id).Pluck("id", &teamIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Comment{}).Where("project_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}

	if len(taskIDs) > 0 {
		if err := db.Exec("DELETE FROM task_members WHERE task_id IN ?", taskIDs).Error; err != nil {
			return err
		}
		if err := db.Delete(&models.Task{}, "id IN ?", taskIDs).Error; err != nil {
			return err
		}
	}
	if len(teamIDs) > 0 {
		if err := db.Exec("DELETE FROM team_members WHERE team_id IN ?", teamIDs).Error; err != nil {
			return err
		}
		if err := db.Delete(&models.Team{}, "id IN ?", teamIDs).Error; err != nil {
			return err
		}
	}
	if len(commentIDs) > 0 {
		if err := db.Delete(&models.CommentReply{}, "comment_id IN ?", commentIDs).Error; err != nil {
			return err
		}
		if err := db.Delete(&models.Comment{}, "id IN ?", commentIDs).Error; err != nil {
			return err
		}
	}
	if err := db.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
		return err
	}

	result := db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) DeleteByWorkspace(db *gorm.DB, workspaceID string) error {
	var ids []string
	if err := db.Model(&models.Project{}).Where("workspace_id = ?", workspaceID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if err := r.Delete(db, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *projectRepository) AddMembers(db *gorm.DB, project *models.Project, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	return db.Model(project).Omit("Members.*").Association("Members").Append(members)
}

func (r *projectRepository) RemoveMember(db *gorm.DB, project *models.Project, member *models.Member) error {
	return db.Model(project).Association("Members").Delete(member)
}
