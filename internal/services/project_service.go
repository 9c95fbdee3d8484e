package services

import (
	"fmt"

	"taskify_backend/internal/access"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService interface {
	Create(db *gorm.DB, userID, workspaceID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	ListByWorkspace(db *gorm.DB, userID, workspaceID string) ([]*dto.ProjectResponse, error)
	Get(db *gorm.DB, userID, projectID string) (*dto.ProjectResponse, error)
	Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(db *gorm.DB, userID, projectID string) error
	AddMember(db *gorm.DB, userID, projectID, memberID string) (*dto.ProjectResponse, error)
	RemoveMember(db *gorm.DB, userID, projectID, memberID string) error
	Complete(db *gorm.DB, userID, projectID string) (*dto.ProjectResponse, error)
}

type ProjectServiceImpl struct {
	projectRepo   repositories.ProjectRepository
	workspaceRepo repositories.WorkspaceRepository
	userRepo      repositories.UserRepository
	notifier      NotificationService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	workspaceRepo repositories.WorkspaceRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) ProjectService {
	return &ProjectServiceImpl{
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// Create создает проект в рабочем пространстве. Строка workspace
// блокируется до коммита, поэтому подсчет проектов и вставка не гоняются
// с параллельными создателями.
func (s *ProjectServiceImpl) Create(db *gorm.DB, userID, workspaceID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := loadActor(tx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	workspace, err := s.workspaceRepo.LockByID(tx, workspaceID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	authz, err := authorize(tx, user, access.Write, workspace, writeRules(access.OwnerOrEditor)...)
	if err != nil {
		return nil, err
	}

	if err := access.ValidateCreate(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	count, err := s.projectRepo.CountByWorkspace(tx, workspace.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := access.CheckProjectQuota(workspace.Plan, count); err != nil {
		return nil, err
	}

	taken, err := s.projectRepo.ExistsByName(tx, req.Name, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrProjectNameTaken
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		LabelColor:  labelColorOrDefault(req.LabelColor),
		StartDate:   access.Naive(req.StartDate),
		EndDate:     access.Naive(req.EndDate),
		WorkspaceID: workspace.ID,
		CreatedByID: &authz.Member.ID,
	}
	if err := s.projectRepo.Create(tx, project); err != nil {
		return nil, conflictOr(err, apperrors.ErrProjectNameTaken)
	}
	if err := s.projectRepo.AddMembers(tx, project, []models.Member{*authz.Member}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "project created", "project_id", project.ID, "workspace_id", workspace.ID)
	return s.load(db, project.ID)
}

func (s *ProjectServiceImpl) ListByWorkspace(db *gorm.DB, userID, workspaceID string) ([]*dto.ProjectResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := s.workspaceRepo.FindByID(db, workspaceID); err != nil {
		return nil, handleRepositoryError(err)
	}
	projects, err := s.projectRepo.ListByWorkspace(db, workspaceID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewProjectList(projects), nil
}

func (s *ProjectServiceImpl) Get(db *gorm.DB, userID, projectID string) (*dto.ProjectResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.load(db, projectID)
}

func (s *ProjectServiceImpl) Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, _, err := s.authorizeWrite(db, userID, projectID, access.OwnerOrEditor)
	if err != nil {
		return nil, err
	}

	if err := access.ValidateUpdate(project.StartDate, project.EndDate, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != project.Name {
		taken, err := s.projectRepo.ExistsByName(db, *req.Name, project.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrProjectNameTaken
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.LabelColor != nil {
		project.LabelColor = *req.LabelColor
	}
	if req.StartDate != nil {
		project.StartDate = access.Naive(*req.StartDate)
	}
	if req.EndDate != nil {
		project.EndDate = access.Naive(*req.EndDate)
	}

	if err := s.projectRepo.Update(db, project); err != nil {
		return nil, conflictOr(err, apperrors.ErrProjectNameTaken)
	}
	return dto.NewProjectResponse(project), nil
}

func (s *ProjectServiceImpl) Delete(db *gorm.DB, userID, projectID string) error {
	project, _, err := s.authorizeWrite(db, userID, projectID, access.OwnerOrEditor)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.projectRepo.Delete(tx, project.ID); err != nil {
		return handleRepositoryError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "project deleted", "project_id", project.ID)
	return nil
}

// AddMember добавляет участника рабочего пространства в проект.
func (s *ProjectServiceImpl) AddMember(db *gorm.DB, userID, projectID, memberID string) (*dto.ProjectResponse, error) {
	project, _, err := s.authorizeWrite(db, userID, projectID, access.OwnerOrEditor)
	if err != nil {
		return nil, err
	}

	member, err := s.workspaceMember(db, project.WorkspaceID, memberID)
	if err != nil {
		return nil, err
	}
	if project.HasMember(member.ID) {
		return nil, apperrors.ErrMemberAlreadyInProject
	}

	if err := s.projectRepo.AddMembers(db, project, []models.Member{*member}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	notifyAfterCommit(db, s.notifier, systemNotification(
		models.NotificationTypeProjectAssign,
		member.UserID,
		fmt.Sprintf("You have been added to the project %s", project.Name),
		map[string]string{"workspace_id": project.WorkspaceID, "project_id": project.ID},
	))
	return s.load(db, project.ID)
}

func (s *ProjectServiceImpl) RemoveMember(db *gorm.DB, userID, projectID, memberID string) error {
	project, _, err := s.authorizeWrite(db, userID, projectID, access.OwnerOrEditor)
	if err != nil {
		return err
	}

	member, err := s.workspaceMember(db, project.WorkspaceID, memberID)
	if err != nil {
		return err
	}
	if !project.HasMember(member.ID) {
		return apperrors.ErrMemberNotInProject
	}

	if err := s.projectRepo.RemoveMember(db, project, member); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProjectServiceImpl) Complete(db *gorm.DB, userID, projectID string) (*dto.ProjectResponse, error) {
	project, _, err := s.authorizeWrite(db, userID, projectID, access.OwnerOrEditor, access.ResourceMember)
	if err != nil {
		return nil, err
	}

	project.IsComplete = true
	if err := s.projectRepo.Update(db, project); err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewProjectResponse(project), nil
}

// authorizeWrite загружает проект и проверяет writeRules с дополнительными правилами.
func (s *ProjectServiceImpl) authorizeWrite(db *gorm.DB, userID, projectID string, rules ...access.Rule) (*models.Project, *access.Request, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, nil, handleRepositoryError(err)
	}
	authz, err := authorize(db, user, access.Write, project, writeRules(rules...)...)
	if err != nil {
		return nil, nil, err
	}
	return project, authz, nil
}

func (s *ProjectServiceImpl) workspaceMember(db *gorm.DB, workspaceID, memberID string) (*models.Member, error) {
	return findWorkspaceMember(db, s.workspaceRepo, workspaceID, memberID)
}

func (s *ProjectServiceImpl) load(db *gorm.DB, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewProjectResponse(project), nil
}
