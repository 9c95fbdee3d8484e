package services

import (
	"taskify_backend/internal/access"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(db *gorm.DB, userID, projectID string, req *dto.CommentRequest) (*dto.CommentResponse, error)
	ListByProject(db *gorm.DB, userID, projectID string) ([]*dto.CommentResponse, error)
	Get(db *gorm.DB, userID, commentID string) (*dto.CommentResponse, error)
	Update(db *gorm.DB, userID, commentID string, req *dto.CommentRequest) (*dto.CommentResponse, error)
	Delete(db *gorm.DB, userID, commentID string) error

	CreateReply(db *gorm.DB, userID, commentID string, req *dto.CommentRequest) (*dto.CommentResponse, error)
	ListReplies(db *gorm.DB, userID, commentID string) ([]*dto.CommentResponse, error)
	GetReply(db *gorm.DB, userID, replyID string) (*dto.CommentResponse, error)
	UpdateReply(db *gorm.DB, userID, replyID string, req *dto.CommentRequest) (*dto.CommentResponse, error)
	DeleteReply(db *gorm.DB, userID, replyID string) error
}

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentServiceImpl) Create(db *gorm.DB, userID, projectID string, req *dto.CommentRequest) (*dto.CommentResponse, error) {
	member, err := s.projectCommenter(db, userID, projectID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:     req.Content,
		ProjectID:   projectID,
		CommenterID: &member.ID,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.loadComment(db, comment.ID)
}

func (s *CommentServiceImpl) ListByProject(db *gorm.DB, userID, projectID string) ([]*dto.CommentResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		return nil, handleRepositoryError(err)
	}
	comments, err := s.commentRepo.ListByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCommentList(comments), nil
}

func (s *CommentServiceImpl) Get(db *gorm.DB, userID, commentID string) (*dto.CommentResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.loadComment(db, commentID)
}

func (s *CommentServiceImpl) Update(db *gorm.DB, userID, commentID string, req *dto.CommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if err := s.authorizeOwner(db, userID, comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(db, comment.ID, req.Content); err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.loadComment(db, comment.ID)
}

// Delete удаляет комментарий вместе с ответами.
func (s *CommentServiceImpl) Delete(db *gorm.DB, userID, commentID string) error {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		return handleRepositoryError(err)
	}
	if err := s.authorizeOwner(db, userID, comment); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.commentRepo.Delete(tx, comment.ID); err != nil {
		return handleRepositoryError(err)
	}
	return tx.Commit().Error
}

func (s *CommentServiceImpl) CreateReply(db *gorm.DB, userID, commentID string, req *dto.CommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	member, err := s.projectCommenter(db, userID, comment.ProjectID)
	if err != nil {
		return nil, err
	}

	reply := &models.CommentReply{
		Content:     req.Content,
		CommentID:   comment.ID,
		CommenterID: &member.ID,
	}
	if err := s.commentRepo.CreateReply(db, reply); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.loadReply(db, reply.ID)
}

func (s *CommentServiceImpl) ListReplies(db *gorm.DB, userID, commentID string) ([]*dto.CommentResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.FindByID(db, commentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	replies, err := s.commentRepo.ListReplies(db, commentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewReplyList(replies), nil
}

func (s *CommentServiceImpl) GetReply(db *gorm.DB, userID, replyID string) (*dto.CommentResponse, error) {
	if _, err := loadActor(db, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.loadReply(db, replyID)
}

func (s *CommentServiceImpl) UpdateReply(db *gorm.DB, userID, replyID string, req *dto.CommentRequest) (*dto.CommentResponse, error) {
	reply, err := s.commentRepo.FindReplyByID(db, replyID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if err := s.authorizeOwner(db, userID, reply); err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateReplyContent(db, reply.ID, req.Content); err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.loadReply(db, reply.ID)
}

func (s *CommentServiceImpl) DeleteReply(db *gorm.DB, userID, replyID string) error {
	reply, err := s.commentRepo.FindReplyByID(db, replyID)
	if err != nil {
		return handleRepositoryError(err)
	}
	if err := s.authorizeOwner(db, userID, reply); err != nil {
		return err
	}
	return handleRepositoryError(s.commentRepo.DeleteReply(db, reply.ID))
}

// projectCommenter возвращает Member автора; писать может только участник проекта.
func (s *CommentServiceImpl) projectCommenter(db *gorm.DB, userID, projectID string) (*models.Member, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	authz, err := authorize(db, user, access.Write, project, writeRules(access.ResourceMember)...)
	if err != nil {
		return nil, err
	}
	return authz.Member, nil
}

// resource - *models.Comment или *models.CommentReply
func (s *CommentServiceImpl) authorizeOwner(db *gorm.DB, userID string, resource any) error {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return err
	}
	_, err = authorize(db, user, access.Write, resource, writeRules(access.CommentOwner)...)
	return err
}

func (s *CommentServiceImpl) loadComment(db *gorm.DB, commentID string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewCommentResponse(comment), nil
}

func (s *CommentServiceImpl) loadReply(db *gorm.DB, replyID string) (*dto.CommentResponse, error) {
	reply, err := s.commentRepo.FindReplyByID(db, replyID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewReplyResponse(reply), nil
}
