package services

import (
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

type TaskService interface {
	CreateForProject(db *gorm.DB, userID, projectID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	CreateForTeam(db *gorm.DB, userID, projectID, teamID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	ListByProject(db *gorm.DB, userID, projectID string, query *dto.TaskListQuery) ([]*dto.TaskResponse, error)
	ListByTeam(db *gorm.DB, userID, teamID string, query *dto.TaskListQuery) ([]*dto.TaskResponse, error)
	Get(db *gorm.DB, userID, taskID string) (*dto.TaskResponse, error)
	Update(db *gorm.DB, userID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(db *gorm.DB, userID, taskID string) error
	AddMember(db *gorm.DB, userID, taskID, memberID string) (*dto.TaskResponse, error)
	RemoveMember(db *gorm.DB, userID, taskID, memberID string) error
	Complete(db *gorm.DB, userID, taskID string) (*dto.TaskResponse, error)
}

type TaskServiceImpl struct {
	taskRepo      repositories.TaskRepository
	projectRepo   repositories.ProjectRepository
	teamRepo      repositories.TeamRepository
	categoryRepo  repositories.CategoryRepository
	workspaceRepo repositories.WorkspaceRepository
	userRepo      repositories.UserRepository
	notifier      NotificationService
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	teamRepo repositories.TeamRepository,
	categoryRepo repositories.CategoryRepository,
	workspaceRepo repositories.WorkspaceRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) TaskService {
	return &TaskServiceImpl{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		teamRepo:      teamRepo,
		categoryRepo:  categoryRepo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// CreateForProject создает общую задачу проекта.
func (s *TaskServiceImpl) CreateForProject(db *gorm.DB, userID, projectID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
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

	assignees, err := s.pickMembers(req.MemberIDs, project, apperrors.ErrMemberNotInProject)
	if err != nil {
		return nil, err
	}
	return s.create(db, project, nil, authz.Member, req, assignees)
}

// CreateForTeam создает задачу команды. Команда должна принадлежать проекту,
// а автор и исполнители должны состоять в команде.
func (s *TaskServiceImpl) CreateForTeam(db *gorm.DB, userID, projectID, teamID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	team, err := s.teamRepo.FindByID(db, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if team.ProjectID != project.ID {
		return nil, apperrors.ErrTeamNotInProject
	}
	authz, err := authorize(db, user, access.Write, team, writeRules(access.OwnerOrEditor, access.ResourceMember)...)
	if err != nil {
		return nil, err
	}

	assignees, err := s.pickMembers(req.MemberIDs, team, apperrors.ErrMemberNotInTeam)
	if err != nil {
		return nil, err
	}
	return s.create(db, project, team, authz.Member, req, assignees)
}

func (s *TaskServiceImpl) create(db *gorm.DB, project *models.Project, team *models.Team, author *models.Member, req *dto.CreateTaskRequest, assignees []models.Member) (*dto.TaskResponse, error) {
	if err := access.ValidateCreate(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if err := access.ValidateWithinProject(req.StartDate, req.EndDate, project.EndDate); err != nil {
		return nil, err
	}
	if err := s.checkCategory(db, req.CategoryID); err != nil {
		return nil, err
	}

	taken, err := s.taskRepo.ExistsByName(db, req.Name, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrTaskNameTaken
	}

	task := &models.Task{
		Name:        req.Name,
		Description: req.Description,
		LabelColor:  labelColorOrDefault(req.LabelColor),
		StartDate:   access.Naive(req.StartDate),
		EndDate:     access.Naive(req.EndDate),
		ProjectID:   project.ID,
		CategoryID:  req.CategoryID,
		CreatedByID: &author.ID,
	}
	if team != nil {
		task.TeamID = &team.ID
		task.IsTeamTask = true
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.taskRepo.Create(tx, task); err != nil {
		return nil, conflictOr(err, apperrors.ErrTaskNameTaken)
	}
	if err := s.taskRepo.AddMembers(tx, task, assignees); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyAssigned(db, task, project, assignees...)
	logger.CtxInfo(db.Statement.Context, "task created", "task_id", task.ID, "project_id", project.ID)
	return s.load(db, task.ID)
}

func (s *TaskServiceImpl) ListByProject(db *gorm.DB, userID, projectID string, query *dto.TaskListQuery) ([]*dto.TaskResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.list(db, projectID, "", query)
}

func (s *TaskServiceImpl) ListByTeam(db *gorm.DB, userID, teamID string, query *dto.TaskListQuery) ([]*dto.TaskResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	team, err := s.teamRepo.FindByID(db, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.list(db, team.ProjectID, team.ID, query)
}

func (s *TaskServiceImpl) list(db *gorm.DB, projectID, teamID string, query *dto.TaskListQuery) ([]*dto.TaskResponse, error) {
	filter := repositories.TaskFilter{TeamID: teamID}
	if query != nil {
		filter.CategoryID = query.CategoryID
		filter.IsComplete = query.IsComplete
	}
	tasks, err := s.taskRepo.ListByProject(db, projectID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskList(tasks), nil
}

func (s *TaskServiceImpl) Get(db *gorm.DB, userID, taskID string) (*dto.TaskResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.load(db, taskID)
}

func (s *TaskServiceImpl) Update(db *gorm.DB, userID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.authorizeWrite(db, userID, taskID, access.OwnerOrEditor)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(db, task.ProjectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	if err := access.ValidateUpdate(task.StartDate, task.EndDate, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	start, end := task.StartDate, task.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if err := access.ValidateWithinProject(start, end, project.EndDate); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != task.Name {
		taken, err := s.taskRepo.ExistsByName(db, *req.Name, task.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrTaskNameTaken
		}
		task.Name = *req.Name
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(db, req.CategoryID); err != nil {
			return nil, err
		}
		task.CategoryID = req.CategoryID
		task.Category = nil
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.LabelColor != nil {
		task.LabelColor = *req.LabelColor
	}
	task.StartDate = access.Naive(start)
	task.EndDate = access.Naive(end)

	if err := s.taskRepo.Update(db, task); err != nil {
		return nil, conflictOr(err, apperrors.ErrTaskNameTaken)
	}
	return s.load(db, task.ID)
}

func (s *TaskServiceImpl) Delete(db *gorm.DB, userID, taskID string) error {
	task, err := s.authorizeWrite(db, userID, taskID, access.OwnerOrEditor)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.taskRepo.Delete(tx, task.ID); err != nil {
		return handleRepositoryError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// AddMember назначает исполнителя. Для задачи команды он должен быть в
// команде, для общей задачи в проекте.
func (s *TaskServiceImpl) AddMember(db *gorm.DB, userID, taskID, memberID string) (*dto.TaskResponse, error) {
	task, err := s.authorizeWrite(db, userID, taskID, access.OwnerOrEditor)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(db, task.ProjectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	var set access.MemberSet = project
	notInSet := apperrors.ErrMemberNotInProject
	if task.TeamID != nil {
		team, err := s.teamRepo.FindByID(db, *task.TeamID)
		if err != nil {
			return nil, handleRepositoryError(err)
		}
		set, notInSet = team, apperrors.ErrMemberNotInTeam
	}

	member, err := findWorkspaceMember(db, s.workspaceRepo, project.WorkspaceID, memberID)
	if err != nil {
		return nil, err
	}
	if !set.HasMember(member.ID) {
		return nil, notInSet
	}
	if task.HasMember(member.ID) {
		return nil, apperrors.ErrMemberAlreadyAssigned
	}

	if err := s.taskRepo.AddMembers(db, task, []models.Member{*member}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyAssigned(db, task, project, *member)
	return s.load(db, task.ID)
}

func (s *TaskServiceImpl) RemoveMember(db *gorm.DB, userID, taskID, memberID string) error {
	task, err := s.authorizeWrite(db, userID, taskID, access.OwnerOrEditor)
	if err != nil {
		return err
	}

	var member *models.Member
	for i := range task.Members {
		if task.Members[i].ID == memberID {
			member = &task.Members[i]
			break
		}
	}
	if member == nil {
		return apperrors.ErrMemberNotAssigned
	}

	if err := s.taskRepo.RemoveMember(db, task, member); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Complete может отметить только исполнитель задачи.
func (s *TaskServiceImpl) Complete(db *gorm.DB, userID, taskID string) (*dto.TaskResponse, error) {
	task, err := s.authorizeWrite(db, userID, taskID, access.ResourceMember)
	if err != nil {
		return nil, err
	}

	task.IsComplete = true
	if err := s.taskRepo.Update(db, task); err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewTaskResponse(task), nil
}

func (s *TaskServiceImpl) authorizeWrite(db *gorm.DB, userID, taskID string, rules ...access.Rule) (*models.Task, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if _, err := authorize(db, user, access.Write, task, writeRules(rules...)...); err != nil {
		return nil, err
	}
	return task, nil
}

// pickMembers выбирает исполнителей из участников проекта или команды.
func (s *TaskServiceImpl) pickMembers(ids []string, from interface{ GetMembers() []models.Member }, notFound *apperrors.AppError) ([]models.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	index := make(map[string]models.Member)
	for _, m := range from.GetMembers() {
		index[m.ID] = m
	}

	picked := make([]models.Member, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		m, ok := index[id]
		if !ok {
			return nil, notFound
		}
		seen[id] = true
		picked = append(picked, m)
	}
	return picked, nil
}

func (s *TaskServiceImpl) checkCategory(db *gorm.DB, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(db, *categoryID); err != nil {
		return handleRepositoryError(err)
	}
	return nil
}

func (s *TaskServiceImpl) notifyAssigned(db *gorm.DB, task *models.Task, project *models.Project, members ...models.Member) {
	if len(members) == 0 {
		return
	}
	notifications := make([]*models.Notification, 0, len(members))
	for _, m := range members {
		notifications = append(notifications, systemNotification(
			models.NotificationTypeTaskAssign,
			m.UserID,
			fmt.Sprintf("You have been assigned to the task %s due %s", task.Name, task.EndDate.Format(time.DateOnly)),
			map[string]string{"project_id": project.ID, "task_id": task.ID},
		))
	}
	notifyAfterCommit(db, s.notifier, notifications...)
}

func (s *TaskServiceImpl) load(db *gorm.DB, taskID string) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewTaskResponse(task), nil
}
