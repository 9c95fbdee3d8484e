package workers_test

import (
	"context"
	"testing"
	"time"

	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/workers"
	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupWorker_RunOnce(t *testing.T) {
	logger.Init("test")
	ts := helpers.NewTestServer(t)
	db := ts.DB

	user := &models.User{Email: helpers.UniqueEmail("cleanup"), PasswordHash: helpers.DefaultPassword}
	require.NoError(t, helpers.CreateUser(t, db, user))

	now := time.Now()
	require.NoError(t, db.Create(&[]models.RefreshToken{
		{UserID: user.ID, Token: "expired-refresh", ExpiresAt: now.Add(-time.Hour)},
		{UserID: user.ID, Token: "live-refresh", ExpiresAt: now.Add(time.Hour)},
	}).Error)
	require.NoError(t, db.Create(&[]models.BlacklistedToken{
		{TokenID: "expired-jti", UserID: user.ID, ExpiresAt: now.Add(-time.Minute)},
		{TokenID: "live-jti", UserID: user.ID, ExpiresAt: now.Add(time.Minute)},
	}).Error)

	old := now.AddDate(0, 0, -31)
	require.NoError(t, db.Create(&[]models.Notification{
		{BaseModel: models.BaseModel{CreatedAt: old}, Message: "old read", ReceiverID: user.ID, IsRead: true},
		{BaseModel: models.BaseModel{CreatedAt: old}, Message: "old unread", ReceiverID: user.ID},
		{Message: "fresh read", ReceiverID: user.ID, IsRead: true},
	}).Error)

	worker := workers.NewCleanupWorker(db, ts.Services.TokenService, ts.Services.NotificationService, 0)
	worker.RunOnce(context.Background())

	var refresh []models.RefreshToken
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&refresh).Error)
	require.Len(t, refresh, 1)
	assert.Equal(t, "live-refresh", refresh[0].Token)

	var blacklisted []models.BlacklistedToken
	require.NoError(t, db.Find(&blacklisted).Error)
	require.Len(t, blacklisted, 1)
	assert.Equal(t, "live-jti", blacklisted[0].TokenID)

	var messages []string
	require.NoError(t, db.Model(&models.Notification{}).Order("message").Pluck("message", &messages).Error)
	assert.Equal(t, []string{"fresh read", "old unread"}, messages)
}
