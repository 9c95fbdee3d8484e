package services

import (
	"errors"
	"fmt"
	"time"

	"taskify_backend/internal/access"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type WorkspaceService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Get(db *gorm.DB, userID, workspaceID string) (*dto.WorkspaceResponse, error)
	GetMyMembership(db *gorm.DB, userID string) (*dto.MemberResponse, error)
	Update(db *gorm.DB, userID, workspaceID string, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Delete(db *gorm.DB, userID, workspaceID string) error

	ListMembers(db *gorm.DB, userID, workspaceID string) ([]*dto.MemberResponse, error)
	AddMember(db *gorm.DB, userID, workspaceID, targetUserID string, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(db *gorm.DB, userID, workspaceID, targetUserID string) error
	UpdateMemberRole(db *gorm.DB, userID, workspaceID, targetUserID string, req *dto.UpdateMemberRoleRequest) (*dto.MemberResponse, error)
}

type WorkspaceServiceImpl struct {
	workspaceRepo repositories.WorkspaceRepository
	projectRepo   repositories.ProjectRepository
	userRepo      repositories.UserRepository
	notifier      NotificationService
}

func NewWorkspaceService(
	workspaceRepo repositories.WorkspaceRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) WorkspaceService {
	return &WorkspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// Create создает рабочее пространство. Создатель становится редактором,
// счетчик участников начинается с 1.
func (s *WorkspaceServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(db, user, access.Write, nil, writeRules()...); err != nil {
		return nil, err
	}

	plan := user.SubscriptionPlan
	if req.Plan != "" {
		parsed, ok := models.ParsePlan(req.Plan)
		if !ok {
			return nil, apperrors.ErrInvalidPlan
		}
		plan = parsed
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.workspaceRepo.FindMemberByUserID(tx, user.ID); err == nil {
		return nil, apperrors.ErrOneWorkspace
	} else if !errors.Is(err, repositories.ErrMemberNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if err := s.checkUnique(tx, req.Name, req.CompanyEmail, ""); err != nil {
		return nil, err
	}

	workspace := &models.Workspace{
		Name:               req.Name,
		CompanyEmail:       req.CompanyEmail,
		MemberCapacity:     req.MemberCapacity,
		CurrentMemberCount: 1,
		Plan:               plan,
		CreatorID:          user.ID,
	}
	if err := s.workspaceRepo.Create(tx, workspace); err != nil {
		return nil, conflictOr(err, apperrors.ErrWorkspaceNameTaken)
	}

	member := &models.Member{
		UserID:      user.ID,
		WorkspaceID: workspace.ID,
		Role:        models.RoleEditor,
		DateJoined:  time.Now().UTC(),
	}
	if err := s.workspaceRepo.CreateMember(tx, member); err != nil {
		return nil, conflictOr(err, apperrors.ErrOneWorkspace)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "workspace created", "workspace_id", workspace.ID)
	return dto.NewWorkspaceResponse(workspace), nil
}

func (s *WorkspaceServiceImpl) Get(db *gorm.DB, userID, workspaceID string) (*dto.WorkspaceResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	workspace, err := s.workspaceRepo.FindByID(db, workspaceID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewWorkspaceResponse(workspace), nil
}

func (s *WorkspaceServiceImpl) GetMyMembership(db *gorm.DB, userID string) (*dto.MemberResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	member, err := s.workspaceRepo.FindMemberByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.ErrNotInAnyWorkspace
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewMemberResponse(member), nil
}

func (s *WorkspaceServiceImpl) Update(db *gorm.DB, userID, workspaceID string, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	workspace, err := s.authorizeWrite(tx, userID, workspaceID, true)
	if err != nil {
		return nil, err
	}

	name, email := "", ""
	if req.Name != nil && *req.Name != workspace.Name {
		name = *req.Name
	}
	if req.CompanyEmail != nil && *req.CompanyEmail != workspace.CompanyEmail {
		email = *req.CompanyEmail
	}
	if err := s.checkUnique(tx, name, email, workspace.ID); err != nil {
		return nil, err
	}

	if name != "" {
		workspace.Name = name
	}
	if email != "" {
		workspace.CompanyEmail = email
	}
	if req.MemberCapacity != nil {
		if *req.MemberCapacity < workspace.CurrentMemberCount {
			return nil, apperrors.ErrCapacityBelowCount
		}
		workspace.MemberCapacity = *req.MemberCapacity
	}
	if req.Plan != nil {
		plan, ok := models.ParsePlan(*req.Plan)
		if !ok {
			return nil, apperrors.ErrInvalidPlan
		}
		workspace.Plan = plan
	}

	if err := s.workspaceRepo.Update(tx, workspace); err != nil {
		return nil, conflictOr(err, apperrors.ErrWorkspaceNameTaken)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewWorkspaceResponse(workspace), nil
}

// Delete удаляет рабочее пространство со всеми проектами и участниками.
func (s *WorkspaceServiceImpl) Delete(db *gorm.DB, userID, workspaceID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	workspace, err := s.authorizeWrite(tx, userID, workspaceID, true)
	if err != nil {
		return err
	}

	if err := s.projectRepo.DeleteByWorkspace(tx, workspace.ID); err != nil {
		return handleRepositoryError(err)
	}
	if err := s.workspaceRepo.Delete(tx, workspace.ID); err != nil {
		return handleRepositoryError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "workspace deleted", "workspace_id", workspace.ID)
	return nil
}

func (s *WorkspaceServiceImpl) ListMembers(db *gorm.DB, userID, workspaceID string) ([]*dto.MemberResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := s.workspaceRepo.FindByID(db, workspaceID); err != nil {
		return nil, handleRepositoryError(err)
	}
	members, err := s.workspaceRepo.ListMembers(db, workspaceID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewMemberList(members), nil
}

// AddMember добавляет пользователя в рабочее пространство. Строка workspace
// блокируется до проверки вместимости; вставка участника и увеличение
// счетчика выполняются в той же транзакции.
func (s *WorkspaceServiceImpl) AddMember(db *gorm.DB, userID, workspaceID, targetUserID string, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	role := models.RoleViewer
	if req.Role != "" {
		role = models.MemberRole(req.Role)
		if !role.Valid() {
			return nil, apperrors.NewBadRequestError("Role must be viewer or editor")
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	workspace, err := s.authorizeWrite(tx, userID, workspaceID, true)
	if err != nil {
		return nil, err
	}
	if err := access.CheckCapacity(workspace.CurrentMemberCount, workspace.MemberCapacity); err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByID(tx, targetUserID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if _, err := s.workspaceRepo.FindMemberByUserID(tx, target.ID); err == nil {
		return nil, apperrors.ErrUserAlreadyInWorkspace
	} else if !errors.Is(err, repositories.ErrMemberNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// условный UPDATE страхует, если блокировка строк недоступна
	ok, err := s.workspaceRepo.IncrementMemberCount(tx, workspace.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrWorkspaceFull
	}

	member := &models.Member{
		UserID:      target.ID,
		WorkspaceID: workspace.ID,
		Role:        role,
		DateJoined:  time.Now().UTC(),
	}
	if err := s.workspaceRepo.CreateMember(tx, member); err != nil {
		return nil, conflictOr(err, apperrors.ErrUserAlreadyInWorkspace)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	member.User = target

	notifyAfterCommit(db, s.notifier, systemNotification(
		models.NotificationTypeWorkspaceInvite,
		target.ID,
		fmt.Sprintf("You have been added to the workspace %s", workspace.Name),
		map[string]string{"workspace_id": workspace.ID, "member_id": member.ID},
	))

	logger.CtxInfo(db.Statement.Context, "member added", "workspace_id", workspace.ID, "member_id", member.ID)
	return dto.NewMemberResponse(member), nil
}

func (s *WorkspaceServiceImpl) RemoveMember(db *gorm.DB, userID, workspaceID, targetUserID string) error {
	if userID == targetUserID {
		return apperrors.ErrCannotRemoveSelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	workspace, err := s.authorizeWrite(tx, userID, workspaceID, false)
	if err != nil {
		return err
	}

	member, err := s.memberOf(tx, workspace.ID, targetUserID)
	if err != nil {
		return err
	}
	if member.UserID == workspace.CreatorID {
		return apperrors.ErrCannotRemoveCreator
	}

	if err := s.workspaceRepo.DetachMember(tx, member.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.workspaceRepo.DeleteMember(tx, member.ID); err != nil {
		return handleRepositoryError(err)
	}
	if err := s.workspaceRepo.DecrementMemberCount(tx, workspace.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "member removed", "workspace_id", workspace.ID, "member_id", member.ID)
	return nil
}

func (s *WorkspaceServiceImpl) UpdateMemberRole(db *gorm.DB, userID, workspaceID, targetUserID string, req *dto.UpdateMemberRoleRequest) (*dto.MemberResponse, error) {
	if userID == targetUserID {
		return nil, apperrors.ErrCannotEditOwnRole
	}
	role := models.MemberRole(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("Role must be viewer or editor")
	}

	workspace, err := s.authorizeWrite(db, userID, workspaceID, false)
	if err != nil {
		return nil, err
	}
	member, err := s.memberOf(db, workspace.ID, targetUserID)
	if err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.UpdateMemberRole(db, member.ID, role); err != nil {
		return nil, handleRepositoryError(err)
	}
	member.Role = role
	return dto.NewMemberResponse(member), nil
}

// authorizeWrite загружает рабочее пространство и проверяет OwnerOrEditor.
// lock берет строку под FOR UPDATE.
func (s *WorkspaceServiceImpl) authorizeWrite(db *gorm.DB, userID, workspaceID string, lock bool) (*models.Workspace, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	var workspace *models.Workspace
	if lock {
		workspace, err = s.workspaceRepo.LockByID(db, workspaceID)
	} else {
		workspace, err = s.workspaceRepo.FindByID(db, workspaceID)
	}
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	if _, err := authorize(db, user, access.Write, workspace, writeRules(access.OwnerOrEditor)...); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *WorkspaceServiceImpl) memberOf(db *gorm.DB, workspaceID, userID string) (*models.Member, error) {
	member, err := s.workspaceRepo.FindMemberByUserID(db, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if member.WorkspaceID != workspaceID {
		return nil, apperrors.ErrMemberNotInWorkspace
	}
	return member, nil
}

// checkUnique проверяет имя и company_email; пустое значение пропускается.
func (s *WorkspaceServiceImpl) checkUnique(db *gorm.DB, name, email, excludeID string) error {
	if name != "" {
		taken, err := s.workspaceRepo.ExistsByName(db, name, excludeID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if taken {
			return apperrors.ErrWorkspaceNameTaken
		}
	}
	if email != "" {
		taken, err := s.workspaceRepo.ExistsByCompanyEmail(db, email, excludeID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if taken {
			return apperrors.ErrCompanyEmailTaken
		}
	}
	return nil
}
