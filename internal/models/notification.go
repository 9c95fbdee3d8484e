package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationTypeDirect          = "direct"
	NotificationTypeWorkspaceInvite = "workspace_invite"
	NotificationTypeProjectAssign   = "project_assign"
	NotificationTypeTaskAssign      = "task_assign"
)

type Notification struct {
	BaseModel
	Type       string  `gorm:"size:32;not null;default:'direct'"`
	Message    string  `gorm:"size:300;not null"`
	SenderID   *string `gorm:"type:varchar(36);index"`
	Sender     *User   `gorm:"foreignKey:SenderID"`
	ReceiverID string  `gorm:"type:varchar(36);not null;index;index:idx_notifications_receiver_read,priority:1"`
	IsRead     bool    `gorm:"default:false;index:idx_notifications_receiver_read,priority:2"`
	ReadAt     *time.Time
	Data       datatypes.JSON // {"workspace_id": "...", "project_id": "..."}
}
