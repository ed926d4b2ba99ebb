package app

import (
	"errors"
	"fmt"

	"workrate_backend/database"
	"workrate_backend/internal/auth"
	"workrate_backend/internal/config"
	"workrate_backend/internal/email"
	"workrate_backend/internal/handlers"
	"workrate_backend/internal/logger"
	"workrate_backend/internal/middleware"
	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/routes"
	"workrate_backend/internal/services"
	"workrate_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		renderer, err := email.NewTemplateManager()
		if err != nil {
			logger.Fatal("Failed to initialize email templates", "error", err)
		}
		emailService = email.NewGomailProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			BaseURL:   cfg.Email.BaseURL,
		}, renderer)
		logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		logger.Warn("SMTP is not configured, emails will be dropped")
		emailService = &MockEmailProvider{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	employeeRepo := repositories.NewEmployeeRepository(gormDB)
	companyRepo := repositories.NewCompanyRepository(gormDB)
	employmentRepo := repositories.NewEmploymentRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)
	feedbackRepo := repositories.NewFeedbackRepository(gormDB)

	authService := services.NewAuthService(userRepo, employeeRepo, companyRepo, emailService)
	employeeService := services.NewEmployeeService(employeeRepo)
	companyService := services.NewCompanyService(companyRepo)
	employmentService := services.NewEmploymentService(employmentRepo, employeeRepo, companyRepo, userRepo, emailService)
	reviewService := services.NewReviewService(reviewRepo, employmentRepo, employeeRepo, companyRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, employmentRepo, employeeRepo)

	return &services.ServiceContainer{
		AuthService:       authService,
		EmployeeService:   employeeService,
		CompanyService:    companyService,
		EmploymentService: employmentService,
		ReviewService:     reviewService,
		FeedbackService:   feedbackService,
		EmailService:      emailService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService),
		EmployeeHandler:   handlers.NewEmployeeHandler(baseHandler, container.EmployeeService),
		CompanyHandler:    handlers.NewCompanyHandler(baseHandler, container.CompanyService),
		EmploymentHandler: handlers.NewEmploymentHandler(baseHandler, container.EmploymentService),
		ReviewHandler:     handlers.NewReviewHandler(baseHandler, container.ReviewService),
		FeedbackHandler:   handlers.NewFeedbackHandler(baseHandler, container.FeedbackService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin создает системного админа при первом запуске.
// Без заданных email/пароля шаг пропускается.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:         adminEmail,
		PasswordHash:  hashedPassword,
		Role:          models.UserRoleSystemAdmin,
		EmailVerified: true,
		IsActive:      true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
