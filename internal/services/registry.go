package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	TokenService        TokenService
	WorkspaceService    WorkspaceService
	ProjectService      ProjectService
	TeamService         TeamService
	TaskService         TaskService
	CommentService      CommentService
	NotificationService NotificationService
	CategoryService     CategoryService
	EmailService        *EmailService
}
