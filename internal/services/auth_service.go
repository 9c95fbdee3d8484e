package services

import (
	"errors"

	"taskify_backend/internal/auth"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const registerMessage = "Registration successful. Check your email to verify your account."

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(db *gorm.DB, token string) error
	ResendVerification(db *gorm.DB, email string) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, userID, refreshToken string, access dto.AccessToken) error
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	tokenService TokenService
	tokens       *auth.TokenManager
	mailer       *EmailService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenService TokenService,
	tokens *auth.TokenManager,
	mailer *EmailService,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		tokens:       tokens,
		mailer:       mailer,
	}
}

// Register создает пользователя и синхронно отправляет письмо подтверждения.
// Если письмо не ушло, аккаунт остается, а клиент получает DeliveryError.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Password != req.Password2 {
		return nil, apperrors.ErrPasswordsDoNotMatch
	}

	plan := models.PlanBasic
	if req.SubscriptionPlan != "" {
		parsed, ok := models.ParsePlan(req.SubscriptionPlan)
		if !ok {
			return nil, apperrors.ErrInvalidPlan
		}
		plan = parsed
	}

	exists, err := s.userRepo.ExistsByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		PasswordHash:     hash,
		IsActive:         true,
		SubscriptionPlan: plan,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, conflictOr(err, apperrors.ErrEmailAlreadyExists)
	}
	logger.CtxInfo(db.Statement.Context, "user registered", "user_id", user.ID)

	if err := s.sendVerification(db, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: registerMessage,
		User:    dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	claims, err := s.tokens.Parse(token, auth.PurposeVerify)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return apperrors.ErrVerificationExpired
		}
		return apperrors.ErrVerificationInvalid
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrVerificationInvalid
		}
		return apperrors.InternalError(err)
	}
	// ссылка, выданная до смены email, недействительна
	if claims.Email != user.Email {
		return apperrors.ErrVerificationInvalid
	}
	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.userRepo.MarkVerified(db, user.ID); err != nil {
		return handleRepositoryError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, email string) error {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		return handleRepositoryError(err)
	}
	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}
	return s.sendVerification(db, user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.TouchLastLogin(tx, user.ID); err != nil {
		return nil, handleRepositoryError(err)
	}
	pair, err := s.tokenService.IssueSession(tx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "user logged in", "user_id", user.ID)
	return newAuthResponse(pair, user), nil
}

func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	pair, userID, err := s.tokenService.Rotate(db, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		_ = s.tokenService.RevokeAll(db, user.ID)
		return nil, apperrors.ErrUserInactive
	}
	return newAuthResponse(pair, user), nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, userID, refreshToken string, access dto.AccessToken) error {
	return s.tokenService.Revoke(db, userID, refreshToken, access)
}

func (s *AuthServiceImpl) sendVerification(db *gorm.DB, user *models.User) error {
	token, err := s.tokens.IssueVerification(user.ID, user.Email)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.mailer.SendVerification(db.Statement.Context, user, token); err != nil {
		return apperrors.DeliveryError(err)
	}
	return nil
}

func newAuthResponse(pair *auth.TokenPair, user *models.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
		User:             dto.NewUserResponse(user),
	}
}
