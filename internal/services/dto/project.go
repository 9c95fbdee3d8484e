package dto

import (
	"time"

	"taskify_backend/internal/models"
)

type CreateProjectRequest struct {
	Name        string    `json:"name" validate:"required,max=40"`
	Description string    `json:"description" validate:"omitempty,max=255"`
	LabelColor  string    `json:"label_color" validate:"omitempty,label-color"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=40"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=255"`
	LabelColor  *string    `json:"label_color,omitempty" validate:"omitempty,label-color"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type ProjectResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	LabelColor  string            `json:"label_color"`
	IsComplete  bool              `json:"is_complete"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	WorkspaceID string            `json:"workspace_id"`
	CreatedByID *string           `json:"created_by_id,omitempty"`
	Members     []*MemberResponse `json:"members"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"omitempty,max=255"`
	TeamPic     string `json:"team_pic" validate:"omitempty,url,max=255"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	TeamPic     *string `json:"team_pic,omitempty" validate:"omitempty,url,max=255"`
}

type TeamResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	TeamPic     string            `json:"team_pic,omitempty"`
	ProjectID   string            `json:"project_id"`
	CreatedByID *string           `json:"created_by_id,omitempty"`
	Members     []*MemberResponse `json:"members"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreateTaskRequest struct {
	Name        string    `json:"name" validate:"required,max=128"`
	Description string    `json:"description" validate:"omitempty,max=255"`
	LabelColor  string    `json:"label_color" validate:"omitempty,label-color"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	CategoryID  *string   `json:"category_id,omitempty" validate:"omitempty,uuid"`
	MemberIDs   []string  `json:"member_ids,omitempty" validate:"omitempty,dive,uuid"`
}

type UpdateTaskRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=255"`
	LabelColor  *string    `json:"label_color,omitempty" validate:"omitempty,label-color"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

type TaskListQuery struct {
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	IsComplete *bool  `form:"is_complete"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	LabelColor  string            `json:"label_color"`
	IsComplete  bool              `json:"is_complete"`
	IsTeamTask  bool              `json:"is_team_task"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	ProjectID   string            `json:"project_id"`
	TeamID      *string           `json:"team_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedByID *string           `json:"created_by_id,omitempty"`
	Members     []*MemberResponse `json:"members"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewProjectResponse(p *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		LabelColor:  p.LabelColor,
		IsComplete:  p.IsComplete,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		WorkspaceID: p.WorkspaceID,
		CreatedByID: p.CreatedByID,
		Members:     NewMemberList(p.Members),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProjectList(projects []models.Project) []*ProjectResponse {
	list := make([]*ProjectResponse, 0, len(projects))
	for i := range projects {
		list = append(list, NewProjectResponse(&projects[i]))
	}
	return list
}

func NewTeamResponse(t *models.Team) *TeamResponse {
	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		TeamPic:     t.TeamPic,
		ProjectID:   t.ProjectID,
		CreatedByID: t.CreatedByID,
		Members:     NewMemberList(t.Members),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTeamList(teams []models.Team) []*TeamResponse {
	list := make([]*TeamResponse, 0, len(teams))
	for i := range teams {
		list = append(list, NewTeamResponse(&teams[i]))
	}
	return list
}

func NewTaskResponse(t *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		LabelColor:  t.LabelColor,
		IsComplete:  t.IsComplete,
		IsTeamTask:  t.IsTeamTask,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		ProjectID:   t.ProjectID,
		TeamID:      t.TeamID,
		CreatedByID: t.CreatedByID,
		Members:     NewMemberList(t.Members),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Category != nil {
		resp.Category = NewCategoryResponse(t.Category)
	}
	return resp
}

func NewTaskList(tasks []models.Task) []*TaskResponse {
	list := make([]*TaskResponse, 0, len(tasks))
	for i := range tasks {
		list = append(list, NewTaskResponse(&tasks[i]))
	}
	return list
}
