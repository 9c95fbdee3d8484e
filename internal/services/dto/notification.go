package dto

import (
	"encoding/json"
	"time"

	"taskify_backend/internal/models"
)

type SendNotificationRequest struct {
	Message string `json:"message" validate:"required,max=300"`
}

type NotificationQuery struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type" validate:"omitempty,oneof=direct workspace_invite project_assign task_assign"`
}

type NotificationResponse struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Message    string                 `json:"message"`
	SenderID   *string                `json:"sender_id,omitempty"`
	Sender     *UserSummary           `json:"sender,omitempty"`
	ReceiverID string                 `json:"receiver_id"`
	IsRead     bool                   `json:"is_read"`
	ReadAt     *time.Time             `json:"read_at,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:         n.ID,
		Type:       n.Type,
		Message:    n.Message,
		SenderID:   n.SenderID,
		Sender:     NewUserSummary(n.Sender),
		ReceiverID: n.ReceiverID,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
	if len(n.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
