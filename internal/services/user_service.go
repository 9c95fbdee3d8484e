package services

import (
	"strings"

	"taskify_backend/internal/access"
	"taskify_backend/internal/auth"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateDetails(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangeEmail(db *gorm.DB, userID string, req *dto.ChangeEmailRequest) (*dto.UserResponse, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	UpdatePlan(db *gorm.DB, userID string, req *dto.UpdatePlanRequest) (*dto.UserResponse, error)
	Deactivate(db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo     repositories.UserRepository
	tokenService TokenService
	tokens       *auth.TokenManager
	mailer       *EmailService
}

func NewUserService(
	userRepo repositories.UserRepository,
	tokenService TokenService,
	tokens *auth.TokenManager,
	mailer *EmailService,
) UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		tokens:       tokens,
		mailer:       mailer,
	}
}

func (s *UserServiceImpl) GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateDetails(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.activeUser(db, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewUserResponse(user), nil
}

// ChangeEmail снимает подтверждение и отправляет ссылку на новый адрес.
func (s *UserServiceImpl) ChangeEmail(db *gorm.DB, userID string, req *dto.ChangeEmailRequest) (*dto.UserResponse, error) {
	user, err := s.activeUser(db, userID)
	if err != nil {
		return nil, err
	}

	newEmail := strings.TrimSpace(req.Email)
	if strings.EqualFold(newEmail, user.Email) {
		return nil, apperrors.ErrEmailTaken
	}
	exists, err := s.userRepo.ExistsByEmail(db, newEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailTaken
	}

	fields := map[string]interface{}{
		"email":       newEmail,
		"is_verified": false,
	}
	if err := s.userRepo.UpdateFields(db, user.ID, fields); err != nil {
		return nil, conflictOr(err, apperrors.ErrEmailTaken)
	}
	user.Email = newEmail
	user.IsVerified = false

	token, err := s.tokens.IssueVerification(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.mailer.SendEmailChanged(db.Statement.Context, user, token); err != nil {
		return nil, apperrors.DeliveryError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.activeUser(db, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}
	if req.NewPassword == req.CurrentPassword {
		return apperrors.ErrSamePassword
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordConfirm
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
		return handleRepositoryError(err)
	}
	return nil
}

func (s *UserServiceImpl) UpdatePlan(db *gorm.DB, userID string, req *dto.UpdatePlanRequest) (*dto.UserResponse, error) {
	user, err := s.activeUser(db, userID)
	if err != nil {
		return nil, err
	}

	plan, ok := models.ParsePlan(req.SubscriptionPlan)
	if !ok {
		return nil, apperrors.ErrInvalidPlan
	}
	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{"subscription_plan": plan}); err != nil {
		return nil, handleRepositoryError(err)
	}
	user.SubscriptionPlan = plan
	return dto.NewUserResponse(user), nil
}

// Deactivate выключает аккаунт и отзывает все refresh-токены.
func (s *UserServiceImpl) Deactivate(db *gorm.DB, userID string) error {
	user, err := s.activeUser(db, userID)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.UpdateFields(tx, user.ID, map[string]interface{}{"is_active": false}); err != nil {
		return handleRepositoryError(err)
	}
	if err := s.tokenService.RevokeAll(tx, user.ID); err != nil {
		return err
	}
	return tx.Commit().Error
}

func (s *UserServiceImpl) activeUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Evaluate(&access.Request{User: user, Op: access.Write}, access.ActiveUser); err != nil {
		return nil, err
	}
	return user, nil
}
