package services

import (
	"workrate_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService       AuthService
	EmployeeService   EmployeeService
	CompanyService    CompanyService
	EmploymentService EmploymentService
	ReviewService     ReviewService
	FeedbackService   FeedbackService
	EmailService      email.Provider
}
