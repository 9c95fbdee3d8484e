package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Назначение токена: access нельзя использовать для подтверждения email и наоборот.
const (
	PurposeAccess = "access"
	PurposeVerify = "verify"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token is expired")
)

type Claims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenPair - ответ на логин и refresh.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type TokenManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL, verifyTTL time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:  []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		verifyTTL:  verifyTTL,
	}
}

func (tm *TokenManager) createToken(userID, email, purpose string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secretKey)
	return signed, expiresAt, err
}

// IssuePair создает access JWT и непрозрачный refresh-токен.
// Refresh-токен сохраняет вызывающий код.
func (tm *TokenManager) IssuePair(userID string) (*TokenPair, error) {
	access, accessExp, err := tm.createToken(userID, "", PurposeAccess, tm.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     uuid.NewString(),
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: time.Now().Add(tm.refreshTTL),
	}, nil
}

func (tm *TokenManager) IssueVerification(userID, email string) (string, error) {
	token, _, err := tm.createToken(userID, email, PurposeVerify, tm.verifyTTL)
	return token, err
}

// Parse проверяет подпись, срок и назначение токена.
func (tm *TokenManager) Parse(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != purpose || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
