package dto

import (
	"time"

	"taskify_backend/internal/models"
)

type CreateCategoryRequest struct {
	Name           string `json:"name" validate:"required,max=50"`
	Description    string `json:"description" validate:"omitempty,max=255"`
	LabelColor     string `json:"label_color" validate:"omitempty,label-color"`
	IsTeamCategory bool   `json:"is_team_category"`
}

type UpdateCategoryRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=255"`
	LabelColor     *string `json:"label_color,omitempty" validate:"omitempty,label-color"`
	IsTeamCategory *bool   `json:"is_team_category,omitempty"`
}

type CategoryQuery struct {
	TeamOnly *bool `form:"team_only"`
}

type CategoryResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	LabelColor     string    `json:"label_color"`
	IsTeamCategory bool      `json:"is_team_category"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewCategoryResponse(c *models.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		LabelColor:     c.LabelColor,
		IsTeamCategory: c.IsTeamCategory,
		CreatedAt:      c.CreatedAt,
	}
}

func NewCategoryList(categories []models.Category) []*CategoryResponse {
	list := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		list = append(list, NewCategoryResponse(&categories[i]))
	}
	return list
}
