package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	EmployeeHandler   *EmployeeHandler
	CompanyHandler    *CompanyHandler
	EmploymentHandler *EmploymentHandler
	ReviewHandler     *ReviewHandler
	FeedbackHandler   *FeedbackHandler
}
