package models

import "time"

type Workspace struct {
	BaseModel
	Name               string           `gorm:"size:120;uniqueIndex;not null"`
	CompanyEmail       string           `gorm:"size:255;uniqueIndex;not null"`
	MemberCapacity     int              `gorm:"not null"`
	CurrentMemberCount int              `gorm:"not null;default:0"`
	Plan               SubscriptionPlan `gorm:"type:varchar(20);not null"`
	CreatorID          string           `gorm:"type:varchar(36);not null;index"`
	Creator            *User            `gorm:"foreignKey:CreatorID"`
}

// Member - участие пользователя в рабочем пространстве.
// Уникальный индекс по user_id: у пользователя не больше одного Member.
type Member struct {
	BaseModel
	UserID      string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	User        *User      `gorm:"foreignKey:UserID"`
	WorkspaceID string     `gorm:"type:varchar(36);index;not null"`
	Role        MemberRole `gorm:"type:varchar(10);not null;default:'viewer'"`
	DateJoined  time.Time  `gorm:"not null"`
}

func (m *Member) IsEditor() bool {
	return m.Role == RoleEditor
}

// hasMember - общий поиск по срезу участников.
func hasMember(members []Member, memberID string) bool {
	for i := range members {
		if members[i].ID == memberID {
			return true
		}
	}
	return false
}
