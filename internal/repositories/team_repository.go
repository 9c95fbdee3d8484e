package repositories

import (
	"errors"

	"taskify_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(db *gorm.DB, team *models.Team) error
	FindByID(db *gorm.DB, id string) (*models.Team, error)
	ListByProject(db *gorm.DB, projectID string) ([]models.Team, error)
	ExistsByName(db *gorm.DB, name, excludeID string) (bool, error)
	Update(db *gorm.DB, team *models.Team) error
	Delete(db *gorm.DB, id string) error

	AddMembers(db *gorm.DB, team *models.Team, members []models.Member) error
	RemoveMember(db *gorm.DB, team *models.Team, member *models.Member) error
}

type teamRepository struct{}

func NewTeamRepository() TeamRepository {
	return &teamRepository{}
}

func (r *teamRepository) Create(db *gorm.DB, team *models.Team) error {
	return translate(db.Create(team).Error, ErrTeamNotFound)
}

func (r *teamRepository) FindByID(db *gorm.DB, id string) (*models.Team, error) {
	var team models.Team
	if err := db.Preload("Members.User").First(&team, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrTeamNotFound)
	}
	return &team, nil
}

func (r *teamRepository) ListByProject(db *gorm.DB, projectID string) ([]models.Team, error) {
	teams := []models.Team{}
	err := db.Preload("Members.User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepository) ExistsByName(db *gorm.DB, name, excludeID string) (bool, error) {
	return exists(db.Model(&models.Team{}).Where("name = ?", name), excludeID)
}

func (r *teamRepository) Update(db *gorm.DB, team *models.Team) error {
	return translate(db.Omit(clause.Associations).Save(team).Error, ErrTeamNotFound)
}

// Delete отвязывает задачи команды: они остаются в проекте как обычные задачи.
func (r *teamRepository) Delete(db *gorm.DB, id string) error {
	if err := db.Model(&models.Task{}).Where("team_id = ?", id).
		Updates(map[string]interface{}{"team_id": nil, "is_team_task": false}).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM team_members WHERE team_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *teamRepository) AddMembers(db *gorm.DB, team *models.Team, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	return db.Model(team).Omit("Members.*").Association("Members").Append(members)
}

func (r *teamRepository) RemoveMember(db *gorm.DB, team *models.Team, member *models.Member) error {
	return db.Model(team).Association("Members").Delete(member)
}
