package database

import (
	"fmt"

	"workrate_backend/internal/config"
	"workrate_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с DSN из конфига.
// TranslateError нужен, чтобы нарушения уникальности приходили
// как gorm.ErrDuplicatedKey, а не сырой ошибкой драйвера.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4() в default-ах моделей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
		&models.Employee{},
		&models.Company{},
		&models.Employment{},
		&models.CompanyReview{},
		&models.Report{},
		&models.EmployeeFeedback{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	return createPartialIndexes(db)
}

// createPartialIndexes создает частичные уникальные индексы, которые
// GORM-тегами не выразить. Они закрывают гонку check-then-insert:
// уникальность действует только среди мягко не удаленных строк.
func createPartialIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_name
			ON companies (name)
			WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_employments_employee_company
			ON employments (employee_id, company_id)
			WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_employee_company
			ON company_reviews (employee_id, company_id)
			WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_feedback_quarter_key
			ON employee_feedbacks (reviewer_id, rated_employee_id, company_id, quarter, year)
			WHERE deleted_at IS NULL`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
