package dto

import (
	"time"

	"taskify_backend/internal/models"
)

// UserResponse - данные пользователя для /users/me и вложенных ответов
type UserResponse struct {
	ID               string                  `json:"id"`
	Email            string                  `json:"email"`
	FirstName        string                  `json:"first_name"`
	LastName         string                  `json:"last_name"`
	PhoneNumber      string                  `json:"phone_number,omitempty"`
	IsVerified       bool                    `json:"is_verified"`
	IsActive         bool                    `json:"is_active"`
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan"`
	LastLogin        *time.Time              `json:"last_login,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

// UserSummary - короткая форма для списков участников
type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=128"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=128"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type UpdatePlanRequest struct {
	SubscriptionPlan string `json:"subscription_plan" validate:"required,plan-tier"`
}

func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		PhoneNumber:      u.PhoneNumber,
		IsVerified:       u.IsVerified,
		IsActive:         u.IsActive,
		SubscriptionPlan: u.SubscriptionPlan,
		LastLogin:        u.LastLogin,
		CreatedAt:        u.CreatedAt,
	}
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Email: u.Email, FullName: u.FullName()}
}
