package handlers

import "taskify_backend/internal/services"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	WorkspaceHandler    *WorkspaceHandler
	ProjectHandler      *ProjectHandler
	TeamHandler         *TeamHandler
	TaskHandler         *TaskHandler
	CommentHandler      *CommentHandler
	CategoryHandler     *CategoryHandler
	NotificationHandler *NotificationHandler
}

func NewAppHandlers(base *BaseHandler, sc *services.ServiceContainer) *AppHandlers {
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		UserHandler:         NewUserHandler(base, sc.UserService),
		WorkspaceHandler:    NewWorkspaceHandler(base, sc.WorkspaceService),
		ProjectHandler:      NewProjectHandler(base, sc.ProjectService),
		TeamHandler:         NewTeamHandler(base, sc.TeamService),
		TaskHandler:         NewTaskHandler(base, sc.TaskService),
		CommentHandler:      NewCommentHandler(base, sc.CommentService),
		CategoryHandler:     NewCategoryHandler(base, sc.CategoryService),
		NotificationHandler: NewNotificationHandler(base, sc.NotificationService),
	}
}
