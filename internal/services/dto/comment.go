package dto

import (
	"time"

	"taskify_backend/internal/models"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=300"`
}

// CommentResponse используется и для комментариев, и для ответов.
type CommentResponse struct {
	ID          string             `json:"id"`
	Content     string             `json:"content"`
	ProjectID   string             `json:"project_id,omitempty"`
	CommentID   string             `json:"comment_id,omitempty"`
	CommenterID *string            `json:"commenter_id"`
	Commenter   *UserSummary       `json:"commenter,omitempty"`
	Replies     []*CommentResponse `json:"replies,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func NewCommentResponse(c *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:          c.ID,
		Content:     c.Content,
		ProjectID:   c.ProjectID,
		CommenterID: c.CommenterID,
		Replies:     make([]*CommentResponse, 0, len(c.Replies)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Commenter != nil {
		resp.Commenter = NewUserSummary(c.Commenter.User)
	}
	for i := range c.Replies {
		resp.Replies = append(resp.Replies, NewReplyResponse(&c.Replies[i]))
	}
	return resp
}

func NewCommentList(comments []models.Comment) []*CommentResponse {
	list := make([]*CommentResponse, 0, len(comments))
	for i := range comments {
		list = append(list, NewCommentResponse(&comments[i]))
	}
	return list
}

func NewReplyResponse(r *models.CommentReply) *CommentResponse {
	resp := &CommentResponse{
		ID:          r.ID,
		Content:     r.Content,
		CommentID:   r.CommentID,
		CommenterID: r.CommenterID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Commenter != nil {
		resp.Commenter = NewUserSummary(r.Commenter.User)
	}
	return resp
}

func NewReplyList(replies []models.CommentReply) []*CommentResponse {
	list := make([]*CommentResponse, 0, len(replies))
	for i := range replies {
		list = append(list, NewReplyResponse(&replies[i]))
	}
	return list
}
