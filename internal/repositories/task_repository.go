package repositories

import (
	"errors"

	"taskify_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskFilter - фильтры списка задач проекта.
type TaskFilter struct {
	TeamID     string
	CategoryID string
	IsComplete *bool
}

type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id string) (*models.Task, error)
	ListByProject(db *gorm.DB, projectID string, filter TaskFilter) ([]models.Task, error)
	ExistsByName(db *gorm.DB, name, excludeID string) (bool, error)
	Update(db *gorm.DB, task *models.Task) error
	Delete(db *gorm.DB, id string) error

	AddMembers(db *gorm.DB, task *models.Task, members []models.Member) error
	RemoveMember(db *gorm.DB, task *models.Task, member *models.Member) error
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(db *gorm.DB, task *models.Task) error {
	return translate(db.Create(task).Error, ErrTaskNotFound)
}

func (r *taskRepository) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	err := db.Preload("Members.User").Preload("Category").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrTaskNotFound)
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(db *gorm.DB, projectID string, filter TaskFilter) ([]models.Task, error) {
	query := db.Preload("Members.User").Preload("Category").Where("project_id = ?", projectID)
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.IsComplete != nil {
		query = query.Where("is_complete = ?", *filter.IsComplete)
	}

	tasks := []models.Task{}
	err := query.Order("start_date ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ExistsByName(db *gorm.DB, name, excludeID string) (bool, error) {
	return exists(db.Model(&models.Task{}).Where("name = ?", name), excludeID)
}

func (r *taskRepository) Update(db *gorm.DB, task *models.Task) error {
	return translate(db.Omit(clause.Associations).Save(task).Error, ErrTaskNotFound)
}

func (r *taskRepository) Delete(db *gorm.DB, id string) error {
	if err := db.Exec("DELETE FROM task_members WHERE task_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) AddMembers(db *gorm.DB, task *models.Task, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	return db.Model(task).Omit("Members.*").Association("Members").Append(members)
}

func (r *taskRepository) RemoveMember(db *gorm.DB, task *models.Task, member *models.Member) error {
	return db.Model(task).Association("Members").Delete(member)
}
