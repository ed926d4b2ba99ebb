package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Общие бизнес-коды
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Аутентификация и авторизация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeAccountSuspended   ErrorCode = "ACCOUNT_SUSPENDED"
	CodeEmailExists        ErrorCode = "EMAIL_EXISTS"

	// Домен: трудоустройство и отзывы
	CodeNotVerified       ErrorCode = "NOT_VERIFIED"
	CodeDuplicateReview   ErrorCode = "DUPLICATE_REVIEW"
	CodeEditWindowExpired ErrorCode = "EDIT_WINDOW_EXPIRED"
	CodeSelfFeedback      ErrorCode = "SELF_FEEDBACK"
	CodeFeedbackExists    ErrorCode = "FEEDBACK_EXISTS"
)
