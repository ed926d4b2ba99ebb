package validator

import (
	"workrate_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) error {
	// Роль при регистрации: system_admin создается только сидом, не через API.
	if err := v.RegisterValidation("user-role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.UserRoleEmployee, models.UserRoleCompanyAdmin:
			return true
		}
		return false
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("report-reason", func(fl validator.FieldLevel) bool {
		return models.IsValidReportReason(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
