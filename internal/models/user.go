package models

import "time"

type User struct {
	BaseModel
	Email            string           `gorm:"size:255;uniqueIndex;not null"`
	FirstName        string           `gorm:"size:128;not null"`
	LastName         string           `gorm:"size:128;not null"`
	PhoneNumber      string           `gorm:"size:11"`
	PasswordHash     string           `gorm:"not null"`
	IsVerified       bool             `gorm:"default:false"`
	IsActive         bool             `gorm:"default:true"`
	SubscriptionPlan SubscriptionPlan `gorm:"type:varchar(20);not null;default:'basic'"`
	LastLogin        *time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// BlacklistedToken - отозванный access-токен. Хранится до истечения его срока.
type BlacklistedToken struct {
	BaseModel
	TokenID   string    `gorm:"size:64;not null;uniqueIndex"`
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
