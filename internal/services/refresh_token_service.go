package services

import (
	"errors"
	"time"

	"taskify_backend/internal/auth"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TokenService управляет сессиями: выдача пары токенов, ротация refresh,
// отзыв access через черный список.
type TokenService interface {
	IssueSession(db *gorm.DB, userID string) (*auth.TokenPair, error)
	Rotate(db *gorm.DB, refreshToken string) (*auth.TokenPair, string, error)
	Revoke(db *gorm.DB, userID, refreshToken string, access dto.AccessToken) error
	RevokeAll(db *gorm.DB, userID string) error
	CleanupExpired(db *gorm.DB) (refresh int64, blacklist int64, err error)
}

type tokenService struct {
	tokens *auth.TokenManager
	repo   repositories.RefreshTokenRepository
}

func NewTokenService(tokens *auth.TokenManager, repo repositories.RefreshTokenRepository) TokenService {
	return &tokenService{tokens: tokens, repo: repo}
}

func (s *tokenService) IssueSession(db *gorm.DB, userID string) (*auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rt := &models.RefreshToken{
		UserID:    userID,
		Token:     pair.RefreshToken,
		ExpiresAt: pair.RefreshExpiresAt,
	}
	if err := s.repo.Create(db, rt); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return pair, nil
}

// Rotate удаляет предъявленный refresh-токен и выдает новую пару.
// Повторное использование того же токена отклоняется.
func (s *tokenService) Rotate(db *gorm.DB, refreshToken string) (*auth.TokenPair, string, error) {
	var (
		pair   *auth.TokenPair
		userID string
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		stored, err := s.repo.FindByToken(tx, refreshToken)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteByToken(tx, refreshToken); err != nil {
			return err
		}
		if time.Now().After(stored.ExpiresAt) {
			return apperrors.ErrTokenExpired
		}

		userID = stored.UserID
		pair, err = s.IssueSession(tx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			// удаление просроченного токена должно сохраниться
			_ = s.repo.DeleteByToken(db, refreshToken)
			return nil, "", apperrors.ErrTokenExpired
		}
		return nil, "", handleRepositoryError(err)
	}
	return pair, userID, nil
}

func (s *tokenService) Revoke(db *gorm.DB, userID, refreshToken string, access dto.AccessToken) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if refreshToken != "" {
			if err := s.repo.DeleteByToken(tx, refreshToken); err != nil && !errors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return apperrors.InternalError(err)
			}
		}
		if access.ID == "" {
			return nil
		}

		entry := &models.BlacklistedToken{
			TokenID:   access.ID,
			UserID:    userID,
			ExpiresAt: access.ExpiresAt,
		}
		if err := s.repo.Blacklist(tx, entry); err != nil {
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(db.Statement.Context, "access token revoked", "token_id", access.ID)
		return nil
	})
}

func (s *tokenService) RevokeAll(db *gorm.DB, userID string) error {
	if err := s.repo.DeleteByUserID(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *tokenService) CleanupExpired(db *gorm.DB) (int64, int64, error) {
	refresh, err := s.repo.CleanExpiredRefreshTokens(db)
	if err != nil {
		return 0, 0, err
	}
	blacklist, err := s.repo.CleanExpiredBlacklist(db)
	if err != nil {
		return refresh, 0, err
	}
	return refresh, blacklist, nil
}
