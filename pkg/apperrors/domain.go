package apperrors

import (
	"fmt"
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок домена. Тексты сообщений видны клиенту.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404), когда репозиторий
// вернул gorm.ErrRecordNotFound или собственный sentinel.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrPlanLimitExceeded - в рабочем пространстве уже максимум проектов для тарифа.
func ErrPlanLimitExceeded(plan string, limit int) *AppError {
	return Validation(CodePlanLimitExceeded, "quota",
		fmt.Sprintf("The %s plan allows a maximum of %d projects per workspace", plan, limit))
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Auth & User ---

var ErrEmailAlreadyExists = Conflict("auth", "Email already exists")

var ErrEmailTaken = Conflict("user", "This email already exists")

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrTokenBlacklisted = New(
	CodeInvalidToken,
	"auth",
	"Token is blacklisted",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token is expired",
	http.StatusUnauthorized,
)

// ErrUserNotVerified - email не подтвержден, логин запрещен.
var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Email is not verified",
	http.StatusForbidden,
)

// ErrUserInactive - аккаунт деактивирован.
var ErrUserInactive = New(
	CodeForbidden,
	"auth",
	"Your account is inactive.",
	http.StatusForbidden,
)

var ErrUserNotFound = NotFound("user", "This user does not exist")

var ErrPasswordsDoNotMatch = Validation(CodeValidationFailed, "auth", "Your passwords do not match")

var ErrAlreadyVerified = Validation(CodeInvalidOperation, "auth", "You have been verified already")

var ErrVerificationExpired = Validation(CodeTokenExpired, "auth", "This verification link is expired")

var ErrVerificationInvalid = Validation(CodeInvalidToken, "auth", "Invalid token")

var ErrWrongPassword = Validation(CodeInvalidCredentials, "user", "User credentials incorrect. Please check your password.")

var ErrSamePassword = Validation(CodeValidationFailed, "user", "New password cannot be the same as old password.")

var ErrPasswordConfirm = Validation(CodeValidationFailed, "user", "New password and confirm password field has to be the same.")

var ErrInvalidPlan = Validation(CodeValidationFailed, "user", "Subscription plan must be one of basic, premium or enterprise")

// --- Workspace ---

var ErrWorkspaceNotFound = NotFound("workspace", "Workspace does not exist")

var ErrWorkspaceNameTaken = Conflict("workspace", "A workspace with this name already exists")

var ErrCompanyEmailTaken = Conflict("workspace", "A workspace with this company email already exists")

// ErrOneWorkspace - пользователь уже состоит в рабочем пространстве.
var ErrOneWorkspace = Validation(CodeInvalidOperation, "workspace", "You are entitled to one workspace at a time.")

var ErrUserAlreadyInWorkspace = Validation(CodeInvalidOperation, "workspace", "The user is already in a workspace")

// ErrWorkspaceFull - счетчик участников достиг вместимости.
var ErrWorkspaceFull = Validation(CodeCapacityExceeded, "workspace", "The workspace is full")

var ErrCapacityBelowCount = Validation(CodeCapacityExceeded, "workspace", "Member capacity cannot be lower than the current member count")

var ErrCannotRemoveSelf = Validation(CodeInvalidOperation, "workspace", "You cannot remove yourself from the workspace")

var ErrCannotRemoveCreator = Validation(CodeInvalidOperation, "workspace", "The creator of the workspace cannot be removed")

var ErrCannotEditOwnRole = Validation(CodeInvalidOperation, "workspace", "You cannot edit your own role")

var ErrMemberNotInWorkspace = NotFound("workspace", "Member does not exist in workspace")

var ErrNotInAnyWorkspace = NotFound("workspace", "You do not exist in this workspace")

// --- Project ---

var ErrProjectNotFound = NotFound("project", "Project does not exist")

var ErrProjectNameTaken = Conflict("project", "A project with this name already exists")

var ErrMemberNotInThisWorkspace = NotFound("project", "Member does not exist in this workspace")

var ErrMemberAlreadyInProject = Validation(CodeInvalidOperation, "project", "This member already exists in this project")

var ErrMemberNotInProject = NotFound("project", "This member does not exist in this project")

// --- Team ---

var ErrTeamNotFound = NotFound("team", "Team does not exist")

var ErrTeamNameTaken = Conflict("team", "A team with this name already exists")

var ErrTeamNotInProject = NotFound("team", "This team does not exist for the project")

var ErrMemberAlreadyInTeam = Validation(CodeInvalidOperation, "team", "This member already exists in this team")

var ErrMemberNotInTeam = NotFound("team", "This member does not exist in this team")

// --- Task ---

var ErrTaskNotFound = NotFound("task", "Task does not exist")

var ErrTaskNameTaken = Conflict("task", "A task with this name already exists")

var ErrMemberAlreadyAssigned = Validation(CodeInvalidOperation, "task", "This member is already assigned to this task")

var ErrMemberNotAssigned = NotFound("task", "This member is not assigned to this task")

// --- Comment ---

var ErrCommentNotFound = NotFound("comment", "Comment does not exist")

var ErrReplyNotFound = NotFound("comment", "Reply does not exist")

// --- Notification ---

var ErrNotificationNotFound = NotFound("notification", "Notification does not exist")

// --- Category ---

var ErrCategoryNotFound = NotFound("category", "Category does not exist")

var ErrCategoryNameTaken = Conflict("category", "A category with this name already exists")

// --- Dates ---

// ErrStartAfterEnd - начало позже окончания.
var ErrStartAfterEnd = Validation(CodeInvalidDateRange, "dates", "Start date cannot be greater than end date")

// ErrDateInPast - дата раньше текущего момента.
var ErrDateInPast = Validation(CodeInvalidDateRange, "dates", "Date cannot be in the past")

// ErrOutOfProjectRange - задача выходит за дату окончания проекта.
var ErrOutOfProjectRange = Validation(CodeOutOfParentRange, "dates", "Task start or end dates must not be after project end date")
