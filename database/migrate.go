package database

import (
	"fmt"

	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// allModels - полный набор таблиц для свежей установки.
func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.RefreshToken{},
		&models.BlacklistedToken{},
		&models.Workspace{},
		&models.Member{},
		&models.Category{},
		&models.Project{},
		&models.Team{},
		&models.Task{},
		&models.Comment{},
		&models.CommentReply{},
		&models.Notification{},
	}
}

// Migrate применяет схему. На пустой БД InitSchema создает все таблицы
// и отмечает миграции ниже как выполненные.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202601200001_blacklisted_tokens",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.BlacklistedToken{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.BlacklistedToken{})
			},
		},
		{
			ID: "202602050001_notifications_receiver_read_index",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&models.Notification{}, "idx_notifications_receiver_read") {
					return nil
				}
				return tx.Migrator().CreateIndex(&models.Notification{}, "idx_notifications_receiver_read")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&models.Notification{}, "idx_notifications_receiver_read")
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		return tx.AutoMigrate(allModels()...)
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations applied")
	return nil
}
