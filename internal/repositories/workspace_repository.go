package repositories

import (
	"errors"

	"taskify_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrMemberNotFound    = errors.New("member not found")
)

type WorkspaceRepository interface {
	Create(db *gorm.DB, workspace *models.Workspace) error
	FindByID(db *gorm.DB, id string) (*models.Workspace, error)
	LockByID(db *gorm.DB, id string) (*models.Workspace, error)
	ExistsByName(db *gorm.DB, name, excludeID string) (bool, error)
	ExistsByCompanyEmail(db *gorm.DB, email, excludeID string) (bool, error)
	Update(db *gorm.DB, workspace *models.Workspace) error
	Delete(db *gorm.DB, id string) error

	// IncrementMemberCount увеличивает счетчик, только если он меньше вместимости.
	IncrementMemberCount(db *gorm.DB, id string) (bool, error)
	DecrementMemberCount(db *gorm.DB, id string) error

	CreateMember(db *gorm.DB, member *models.Member) error
	FindMemberByID(db *gorm.DB, id string) (*models.Member, error)
	FindMemberByUserID(db *gorm.DB, userID string) (*models.Member, error)
	ListMembers(db *gorm.DB, workspaceID string) ([]models.Member, error)
	UpdateMemberRole(db *gorm.DB, memberID string, role models.MemberRole) error
	DeleteMember(db *gorm.DB, memberID string) error
	// DetachMember убирает участника из проектов, команд и задач и обнуляет авторство.
	DetachMember(db *gorm.DB, memberID string) error
}

type workspaceRepository struct{}

func NewWorkspaceRepository() WorkspaceRepository {
	return &workspaceRepository{}
}

func (r *workspaceRepository) Create(db *gorm.DB, workspace *models.Workspace) error {
	return translate(db.Create(workspace).Error, ErrWorkspaceNotFound)
}

func (r *workspaceRepository) FindByID(db *gorm.DB, id string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := db.First(&workspace, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrWorkspaceNotFound)
	}
	return &workspace, nil
}

// LockByID читает строку с SELECT ... FOR UPDATE. SQLite блокировок строк
// не поддерживает, там запись и так сериализована.
func (r *workspaceRepository) LockByID(db *gorm.DB, id string) (*models.Workspace, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.FindByID(db, id)
}

func (r *workspaceRepository) ExistsByName(db *gorm.DB, name, excludeID string) (bool, error) {
	return exists(db.Model(&models.Workspace{}).Where("name = ?", name), excludeID)
}

func (r *workspaceRepository) ExistsByCompanyEmail(db *gorm.DB, email, excludeID string) (bool, error) {
	return exists(db.Model(&models.Workspace{}).Where("company_email = ?", email), excludeID)
}

func (r *workspaceRepository) Update(db *gorm.DB, workspace *models.Workspace) error {
	return translate(db.Save(workspace).Error, ErrWorkspaceNotFound)
}

// Delete удаляет рабочее пространство вместе с участниками.
// Проекты удаляются отдельно через ProjectRepository.DeleteByWorkspace.
func (r *workspaceRepository) Delete(db *gorm.DB, id string) error {
	if err := db.Delete(&models.Member{}, "workspace_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Workspace{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (r *workspaceRepository) IncrementMemberCount(db *gorm.DB, id string) (bool, error) {
	result := db.Model(&models.Workspace{}).
		Where("id = ? AND current_member_count < member_capacity", id).
		UpdateColumn("current_member_count", gorm.Expr("current_member_count + ?", 1))
	return result.RowsAffected == 1, result.Error
}

func (r *workspaceRepository) DecrementMemberCount(db *gorm.DB, id string) error {
	return db.Model(&models.Workspace{}).
		Where("id = ? AND current_member_count > 0", id).
		UpdateColumn("current_member_count", gorm.Expr("current_member_count - ?", 1)).Error
}

func (r *workspaceRepository) CreateMember(db *gorm.DB, member *models.Member) error {
	return translate(db.Create(member).Error, ErrMemberNotFound)
}

func (r *workspaceRepository) FindMemberByID(db *gorm.DB, id string) (*models.Member, error) {
	var member models.Member
	if err := db.Preload("User").First(&member, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrMemberNotFound)
	}
	return &member, nil
}

func (r *workspaceRepository) FindMemberByUserID(db *gorm.DB, userID string) (*models.Member, error) {
	var member models.Member
	if err := db.Preload("User").First(&member, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, ErrMemberNotFound)
	}
	return &member, nil
}

func (r *workspaceRepository) ListMembers(db *gorm.DB, workspaceID string) ([]models.Member, error) {
	var members []models.Member
	err := db.Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("date_joined ASC").
		Find(&members).Error
	return members, err
}

func (r *workspaceRepository) UpdateMemberRole(db *gorm.DB, memberID string, role models.MemberRole) error {
	result := db.Model(&models.Member{}).Where("id = ?", memberID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *workspaceRepository) DeleteMember(db *gorm.DB, memberID string) error {
	result := db.Delete(&models.Member{}, "id = ?", memberID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *workspaceRepository) DetachMember(db *gorm.DB, memberID string) error {
	for _, table := range []string{"project_members", "team_members", "task_members"} {
		if err := db.Exec("DELETE FROM "+table+" WHERE member_id = ?", memberID).Error; err != nil {
			return err
		}
	}
	if err := db.Model(&models.Comment{}).Where("commenter_id = ?", memberID).Update("commenter_id", nil).Error; err != nil {
		return err
	}
	if err := db.Model(&models.CommentReply{}).Where("commenter_id = ?", memberID).Update("commenter_id", nil).Error; err != nil {
		return err
	}
	for _, model := range []interface{}{&models.Project{}, &models.Team{}, &models.Task{}} {
		if err := db.Model(model).Where("created_by_id = ?", memberID).Update("created_by_id", nil).Error; err != nil {
			return err
		}
	}
	return nil
}

// exists - COUNT с необязательным исключением текущей записи (для update).
func exists(query *gorm.DB, excludeID string) (bool, error) {
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}
