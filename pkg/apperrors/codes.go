package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие коды ошибок
const (
	// Системные ошибки
	CodeInternalError  ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError  ErrorCode = "DATABASE_ERROR"
	CodeDeliveryFailed ErrorCode = "DELIVERY_FAILED"

	// Ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Квоты и даты
	CodeCapacityExceeded  ErrorCode = "CAPACITY_EXCEEDED"
	CodePlanLimitExceeded ErrorCode = "PLAN_LIMIT_EXCEEDED"
	CodeInvalidDateRange  ErrorCode = "INVALID_DATE_RANGE"
	CodeOutOfParentRange  ErrorCode = "OUT_OF_PARENT_RANGE"

	// Аутентификация и авторизация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)
