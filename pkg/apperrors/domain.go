package apperrors

import "net/http"

/*
Фабрики и предопределенные переменные для доменных ошибок.
Репозиторные ошибки (gorm.ErrRecordNotFound и т.п.) преобразуются
в AppError на уровне сервисов, до границы HTTP.
*/

// --- Фабрики ---

// ErrNotFound - ресурс отсутствует или мягко удален (404)
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - нарушение уникальности (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeEmailExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

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

var ErrEmailNotVerified = New(
	CodeEmailNotVerified,
	"auth",
	"Please verify your email before logging in",
	http.StatusForbidden,
)

var ErrAccountSuspended = New(
	CodeAccountSuspended,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Employment ---

var ErrEmploymentExists = New(
	CodeConflict,
	"employment",
	"Employment request already exists for this company",
	http.StatusConflict,
)

var ErrEmploymentNotPending = New(
	CodeConflict,
	"employment",
	"Employment has already been decided",
	http.StatusConflict,
)

var ErrEmploymentEnded = New(
	CodeConflict,
	"employment",
	"Employment has already ended",
	http.StatusConflict,
)

// --- Reviews ---

// ErrNotVerifiedEmployment - нет approved-трудоустройства в этой компании.
var ErrNotVerifiedEmployment = New(
	CodeNotVerified,
	"review",
	"You must have verified employment at this company to leave a review",
	http.StatusForbidden,
)

var ErrDuplicateReview = New(
	CodeDuplicateReview,
	"review",
	"You have already reviewed this company",
	http.StatusConflict,
)

var ErrEditWindowExpired = New(
	CodeEditWindowExpired,
	"review",
	"Edit window has expired (48 hours from creation)",
	http.StatusForbidden,
)

// --- Feedback ---

var ErrSelfFeedback = New(
	CodeSelfFeedback,
	"feedback",
	"You cannot give feedback to yourself",
	http.StatusBadRequest,
)

var ErrFeedbackNotAllowed = New(
	CodeForbidden,
	"feedback",
	"Both employees must have approved employment at this company",
	http.StatusForbidden,
)

var ErrFeedbackExists = New(
	CodeFeedbackExists,
	"feedback",
	"Feedback already submitted for this quarter",
	http.StatusConflict,
)

// --- Profile ---

var ErrProfileNotPublic = New(
	CodeForbidden,
	"profile",
	"This profile is private",
	http.StatusForbidden,
)
