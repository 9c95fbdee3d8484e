package dto

import (
	"time"

	"taskify_backend/internal/access"
	"taskify_backend/internal/models"
)

type CreateWorkspaceRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	CompanyEmail   string `json:"company_email" validate:"required,email,max=255"`
	MemberCapacity int    `json:"member_capacity" validate:"required,min=1"`
	Plan           string `json:"plan" validate:"omitempty,plan-tier"`
}

type UpdateWorkspaceRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	CompanyEmail   *string `json:"company_email,omitempty" validate:"omitempty,email,max=255"`
	MemberCapacity *int    `json:"member_capacity,omitempty" validate:"omitempty,min=1"`
	Plan           *string `json:"plan,omitempty" validate:"omitempty,plan-tier"`
}

type AddMemberRequest struct {
	Role string `json:"role" validate:"omitempty,member-role"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,member-role"`
}

type WorkspaceResponse struct {
	ID                 string                  `json:"id"`
	Name               string                  `json:"name"`
	CompanyEmail       string                  `json:"company_email"`
	MemberCapacity     int                     `json:"member_capacity"`
	CurrentMemberCount int                     `json:"current_member_count"`
	Plan               models.SubscriptionPlan `json:"plan"`
	ProjectLimit       int                     `json:"project_limit"`
	CreatorID          string                  `json:"creator_id"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

type MemberResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	WorkspaceID string            `json:"workspace_id"`
	Role        models.MemberRole `json:"role"`
	DateJoined  time.Time         `json:"date_joined"`
	User        *UserSummary      `json:"user,omitempty"`
}

func NewMemberResponse(m *models.Member) *MemberResponse {
	return &MemberResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		WorkspaceID: m.WorkspaceID,
		Role:        m.Role,
		DateJoined:  m.DateJoined,
		User:        NewUserSummary(m.User),
	}
}

func NewMemberList(members []models.Member) []*MemberResponse {
	list := make([]*MemberResponse, 0, len(members))
	for i := range members {
		list = append(list, NewMemberResponse(&members[i]))
	}
	return list
}

func NewWorkspaceResponse(w *models.Workspace) *WorkspaceResponse {
	return &WorkspaceResponse{
		ID:                 w.ID,
		Name:               w.Name,
		CompanyEmail:       w.CompanyEmail,
		MemberCapacity:     w.MemberCapacity,
		CurrentMemberCount: w.CurrentMemberCount,
		Plan:               w.Plan,
		ProjectLimit:       access.ProjectLimit(w.Plan),
		CreatorID:          w.CreatorID,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}
