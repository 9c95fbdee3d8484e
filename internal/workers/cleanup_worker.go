package workers

import (
	"context"
	"time"

	"taskify_backend/internal/logger"
	"taskify_backend/internal/services"

	"gorm.io/gorm"
)

const (
	cleanupWorkerName = "cleanup"
	// Прочитанные уведомления хранятся 30 дней
	notificationRetention = 30 * 24 * time.Hour
)

// CleanupWorker удаляет истекшие refresh-токены, записи черного списка
// и старые уведомления.
type CleanupWorker struct {
	db            *gorm.DB
	tokens        services.TokenService
	notifications services.NotificationService
	interval      time.Duration
}

func NewCleanupWorker(db *gorm.DB, tokens services.TokenService, notifications services.NotificationService, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupWorker{
		db:            db,
		tokens:        tokens,
		notifications: notifications,
		interval:      interval,
	}
}

// Start запускает воркер в отдельной горутине
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет одну итерацию очистки
func (w *CleanupWorker) RunOnce(ctx context.Context) {
	db := w.db.WithContext(ctx)

	refresh, blacklist, err := w.tokens.CleanupExpired(db)
	logger.WorkerLog(cleanupWorkerName, "expired_tokens", err,
		"refresh_deleted", refresh,
		"blacklist_deleted", blacklist,
	)

	deleted, err := w.notifications.CleanOld(db, notificationRetention)
	logger.WorkerLog(cleanupWorkerName, "old_notifications", err, "deleted", deleted)
}
