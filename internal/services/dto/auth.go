package dto

import "time"

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email,max=255"`
	FirstName        string `json:"first_name" validate:"required,max=128"`
	LastName         string `json:"last_name" validate:"required,max=128"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,phone"`
	Password         string `json:"password" validate:"required,min=8,max=128"`
	Password2        string `json:"password2" validate:"required"`
	SubscriptionPlan string `json:"subscription_plan" validate:"omitempty,plan-tier"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty"`
}

type VerifyEmailQuery struct {
	Token string `form:"token" json:"token" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse - ответ с токенами
type AuthResponse struct {
	AccessToken      string        `json:"access_token"`
	RefreshToken     string        `json:"refresh_token"`
	AccessExpiresAt  time.Time     `json:"access_expires_at"`
	RefreshExpiresAt time.Time     `json:"refresh_expires_at"`
	User             *UserResponse `json:"user"`
}

type RegisterResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// AccessToken - данные текущего access-токена для logout.
type AccessToken struct {
	ID        string
	ExpiresAt time.Time
}
