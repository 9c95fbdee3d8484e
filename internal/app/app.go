package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskify_backend/database"
	_ "taskify_backend/docs"
	"taskify_backend/internal/auth"
	"taskify_backend/internal/config"
	"taskify_backend/internal/email"
	"taskify_backend/internal/handlers"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/middleware"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/routes"
	"taskify_backend/internal/services"
	"taskify_backend/internal/validator"
	"taskify_backend/internal/workers"
	"taskify_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, logger.NewGormLogger(cfg.Server.Env))
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if cfg.Database.MaxOpenConns > 0 && cfg.Database.Driver != database.DriverSQLite {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer sqlDB.Close()
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer := newEmailProvider(cfg)
	defer mailer.Close()

	ginRouter, serviceContainer := SetupRouter(ctx, cfg, gormDB, mailer)

	cleanup := workers.NewCleanupWorker(
		gormDB,
		serviceContainer.TokenService,
		serviceContainer.NotificationService,
		time.Duration(cfg.Workers.TokenCleanupMinutes)*time.Minute,
	)
	cleanup.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает репозитории, сервисы, хэндлеры и маршруты.
// WebSocket-менеджер живет, пока не отменен ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, mailer email.Provider) (*gin.Engine, *services.ServiceContainer) {
	tokenManager := auth.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLHours)*time.Hour,
		time.Duration(cfg.JWT.VerifyTTLMinutes)*time.Minute,
	)

	// 1. WebSocket
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)
	wsHandler := ws.NewWebSocketHandler(wsManager, cfg.CORS.AllowedOrigins)

	// 2. Сервисы
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	serviceContainer := initializeServices(cfg, tokenManager, refreshTokenRepo, mailer, wsManager)

	// 3. Хэндлеры
	requireAuth := middleware.AuthMiddleware(tokenManager, refreshTokenRepo)
	baseHandler := handlers.NewBaseHandler(validator.New(), requireAuth)
	appHandlers := handlers.NewAppHandlers(baseHandler, serviceContainer)

	// 4. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, requireAuth)

	return ginRouter, serviceContainer
}

func initializeServices(
	cfg *config.Config,
	tokenManager *auth.TokenManager,
	refreshTokenRepo repositories.RefreshTokenRepository,
	mailer email.Provider,
	publisher services.NotificationPublisher,
) *services.ServiceContainer {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	workspaceRepo := repositories.NewWorkspaceRepository()
	projectRepo := repositories.NewProjectRepository()
	teamRepo := repositories.NewTeamRepository()
	taskRepo := repositories.NewTaskRepository()
	categoryRepo := repositories.NewCategoryRepository()
	commentRepo := repositories.NewCommentRepository()
	notificationRepo := repositories.NewNotificationRepository()

	// --- Сервисы ---
	emailService := services.NewEmailService(mailer, cfg.Email.VerifyURL, time.Duration(cfg.JWT.VerifyTTLMinutes)*time.Minute)
	tokenService := services.NewTokenService(tokenManager, refreshTokenRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, publisher)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, tokenService, tokenManager, emailService),
		UserService:         services.NewUserService(userRepo, tokenService, tokenManager, emailService),
		TokenService:        tokenService,
		WorkspaceService:    services.NewWorkspaceService(workspaceRepo, projectRepo, userRepo, notificationService),
		ProjectService:      services.NewProjectService(projectRepo, workspaceRepo, userRepo, notificationService),
		TeamService:         services.NewTeamService(teamRepo, projectRepo, workspaceRepo, userRepo),
		TaskService:         services.NewTaskService(taskRepo, projectRepo, teamRepo, categoryRepo, workspaceRepo, userRepo, notificationService),
		CommentService:      services.NewCommentService(commentRepo, projectRepo, userRepo),
		NotificationService: notificationService,
		CategoryService:     services.NewCategoryService(categoryRepo, userRepo),
		EmailService:        emailService,
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// newEmailProvider возвращает SMTP-провайдер, либо мок, если SMTP не настроен
// или запущено тестовое окружение.
func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" || cfg.Server.Env == "test" {
		logger.Warn("SMTP is not configured, emails are logged only")
		return NewMockEmailProvider()
	}

	renderer := email.NewTemplateManager()
	if err := renderer.LoadDefaults(); err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}
	if cfg.Email.TemplatesDir != "" {
		if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.Warn("Failed to load custom email templates", "dir", cfg.Email.TemplatesDir, "error", err)
		}
	}

	smtpConfig := email.DefaultConfig()
	smtpConfig.Host = cfg.Email.SMTPHost
	smtpConfig.Port = cfg.Email.SMTPPort
	smtpConfig.Username = cfg.Email.SMTPUsername
	smtpConfig.Password = cfg.Email.SMTPPassword
	smtpConfig.FromEmail = cfg.Email.FromEmail
	smtpConfig.UseTLS = cfg.Email.UseTLS
	if cfg.Email.FromName != "" {
		smtpConfig.FromName = cfg.Email.FromName
	}

	return email.NewSMTPProvider(smtpConfig, renderer)
}
