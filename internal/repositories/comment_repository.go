package repositories

import (
	"errors"

	"taskify_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrReplyNotFound   = errors.New("reply not found")
)

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	ListByProject(db *gorm.DB, projectID string) ([]models.Comment, error)
	UpdateContent(db *gorm.DB, id, content string) error
	Delete(db *gorm.DB, id string) error

	CreateReply(db *gorm.DB, reply *models.CommentReply) error
	FindReplyByID(db *gorm.DB, id string) (*models.CommentReply, error)
	ListReplies(db *gorm.DB, commentID string) ([]models.CommentReply, error)
	UpdateReplyContent(db *gorm.DB, id, content string) error
	DeleteReply(db *gorm.DB, id string) error
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *commentRepository) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.Preload("Commenter.User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Replies.Commenter.User").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func (r *commentRepository) ListByProject(db *gorm.DB, projectID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := db.Preload("Commenter.User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Replies.Commenter.User").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateContent(db *gorm.DB, id, content string) error {
	return updateContent(db, &models.Comment{}, id, content, ErrCommentNotFound)
}

func (r *commentRepository) Delete(db *gorm.DB, id string) error {
	if err := db.Delete(&models.CommentReply{}, "comment_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) CreateReply(db *gorm.DB, reply *models.CommentReply) error {
	return db.Create(reply).Error
}

func (r *commentRepository) FindReplyByID(db *gorm.DB, id string) (*models.CommentReply, error) {
	var reply models.CommentReply
	if err := db.Preload("Commenter.User").First(&reply, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrReplyNotFound)
	}
	return &reply, nil
}

func (r *commentRepository) ListReplies(db *gorm.DB, commentID string) ([]models.CommentReply, error) {
	replies := []models.CommentReply{}
	err := db.Preload("Commenter.User").
		Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *commentRepository) UpdateReplyContent(db *gorm.DB, id, content string) error {
	return updateContent(db, &models.CommentReply{}, id, content, ErrReplyNotFound)
}

func (r *commentRepository) DeleteReply(db *gorm.DB, id string) error {
	result := db.Delete(&models.CommentReply{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReplyNotFound
	}
	return nil
}

func updateContent(db *gorm.DB, model interface{}, id, content string, notFound error) error {
	result := db.Model(model).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
