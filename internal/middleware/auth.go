package middleware

import (
	"errors"
	"strings"
	"time"

	"taskify_backend/internal/auth"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/repositories"
	"taskify_backend/pkg/apperrors"
	"taskify_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// Ключи gin.Context, которые выставляет AuthMiddleware
const (
	UserIDKey         = "userID"
	TokenIDKey        = "tokenID"
	TokenExpiresAtKey = "tokenExpiresAt"
)

var errMissingAuthHeader = apperrors.NewUnauthorizedError("Authorization header missing or invalid")

// AuthMiddleware проверяет access JWT и черный список отозванных токенов.
// Для websocket-рукопожатия токен можно передать в ?token=, браузер
// не умеет выставлять заголовки для ws.
func AuthMiddleware(tm *auth.TokenManager, tokens repositories.RefreshTokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, errMissingAuthHeader)
			return
		}

		claims, err := tm.Parse(tokenStr, auth.PurposeAccess)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				apperrors.HandleError(c, apperrors.ErrTokenExpired)
			} else {
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
			}
			return
		}

		db := dbFromContext(c).WithContext(c.Request.Context())
		blacklisted, err := tokens.IsBlacklisted(db, claims.ID)
		if err != nil {
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}
		if blacklisted {
			apperrors.HandleError(c, apperrors.ErrTokenBlacklisted)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(TokenIDKey, claims.ID)
		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		c.Set(TokenExpiresAtKey, expiresAt)

		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return token, token != ""
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		if token := c.Query("token"); token != "" {
			return token, true
		}
	}
	return "", false
}

func dbFromContext(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	panic("middleware: DBMiddleware must run before AuthMiddleware")
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
