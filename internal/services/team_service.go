package services

import (
	"taskify_backend/internal/access"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TeamService interface {
	Create(db *gorm.DB, userID, projectID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	ListByProject(db *gorm.DB, userID, projectID string) ([]*dto.TeamResponse, error)
	Get(db *gorm.DB, userID, teamID string) (*dto.TeamResponse, error)
	Update(db *gorm.DB, userID, teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	Delete(db *gorm.DB, userID, teamID string) error
	AddMember(db *gorm.DB, userID, teamID, memberID string) (*dto.TeamResponse, error)
	RemoveMember(db *gorm.DB, userID, teamID, memberID string) error
}

type TeamServiceImpl struct {
	teamRepo      repositories.TeamRepository
	projectRepo   repositories.ProjectRepository
	workspaceRepo repositories.WorkspaceRepository
	userRepo      repositories.UserRepository
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	projectRepo repositories.ProjectRepository,
	workspaceRepo repositories.WorkspaceRepository,
	userRepo repositories.UserRepository,
) TeamService {
	return &TeamServiceImpl{
		teamRepo:      teamRepo,
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

// Create создает команду в проекте; создатель становится ее участником.
func (s *TeamServiceImpl) Create(db *gorm.DB, userID, projectID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	authz, err := authorize(db, user, access.Write, project, writeRules(access.OwnerOrEditor, access.ResourceMember)...)
	if err != nil {
		return nil, err
	}

	taken, err := s.teamRepo.ExistsByName(db, req.Name, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrTeamNameTaken
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		TeamPic:     req.TeamPic,
		ProjectID:   project.ID,
		CreatedByID: &authz.Member.ID,
	}
	if err := s.teamRepo.Create(tx, team); err != nil {
		return nil, conflictOr(err, apperrors.ErrTeamNameTaken)
	}
	if err := s.teamRepo.AddMembers(tx, team, []models.Member{*authz.Member}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "team created", "team_id", team.ID, "project_id", project.ID)
	return s.load(db, team.ID)
}

func (s *TeamServiceImpl) ListByProject(db *gorm.DB, userID, projectID string) ([]*dto.TeamResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		return nil, handleRepositoryError(err)
	}
	teams, err := s.teamRepo.ListByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTeamList(teams), nil
}

func (s *TeamServiceImpl) Get(db *gorm.DB, userID, teamID string) (*dto.TeamResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.load(db, teamID)
}

func (s *TeamServiceImpl) Update(db *gorm.DB, userID, teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.authorizeWrite(db, userID, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != team.Name {
		taken, err := s.teamRepo.ExistsByName(db, *req.Name, team.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrTeamNameTaken
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.TeamPic != nil {
		team.TeamPic = *req.TeamPic
	}

	if err := s.teamRepo.Update(db, team); err != nil {
		return nil, conflictOr(err, apperrors.ErrTeamNameTaken)
	}
	return dto.NewTeamResponse(team), nil
}

// Delete удаляет команду; ее задачи остаются в проекте.
func (s *TeamServiceImpl) Delete(db *gorm.DB, userID, teamID string) error {
	team, err := s.authorizeWrite(db, userID, teamID)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.teamRepo.Delete(tx, team.ID); err != nil {
		return handleRepositoryError(err)
	}
	return tx.Commit().Error
}

// AddMember: в команду можно добавить только участника проекта.
func (s *TeamServiceImpl) AddMember(db *gorm.DB, userID, teamID, memberID string) (*dto.TeamResponse, error) {
	team, err := s.authorizeWrite(db, userID, teamID)
	if err != nil {
		return nil, err
	}

	member, err := s.projectMember(db, team.ProjectID, memberID)
	if err != nil {
		return nil, err
	}
	if team.HasMember(member.ID) {
		return nil, apperrors.ErrMemberAlreadyInTeam
	}

	if err := s.teamRepo.AddMembers(db, team, []models.Member{*member}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.load(db, team.ID)
}

func (s *TeamServiceImpl) RemoveMember(db *gorm.DB, userID, teamID, memberID string) error {
	team, err := s.authorizeWrite(db, userID, teamID)
	if err != nil {
		return err
	}

	var member *models.Member
	for i := range team.Members {
		if team.Members[i].ID == memberID {
			member = &team.Members[i]
			break
		}
	}
	if member == nil {
		return apperrors.ErrMemberNotInTeam
	}

	if err := s.teamRepo.RemoveMember(db, team, member); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *TeamServiceImpl) authorizeWrite(db *gorm.DB, userID, teamID string) (*models.Team, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	team, err := s.teamRepo.FindByID(db, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if _, err := authorize(db, user, access.Write, team, writeRules(access.OwnerOrEditor)...); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamServiceImpl) projectMember(db *gorm.DB, projectID, memberID string) (*models.Member, error) {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	member, err := findWorkspaceMember(db, s.workspaceRepo, project.WorkspaceID, memberID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(member.ID) {
		return nil, apperrors.ErrMemberNotInProject
	}
	return member, nil
}

func (s *TeamServiceImpl) load(db *gorm.DB, teamID string) (*dto.TeamResponse, error) {
	team, err := s.teamRepo.FindByID(db, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewTeamResponse(team), nil
}
