package services

import (
	"encoding/json"
	"errors"

	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type EmployeeService interface {
	GetEmployee(viewerUserID string, viewerRole models.UserRole, employeeID string) (*dto.EmployeeResponse, error)
	GetMyProfile(userID string) (*dto.EmployeeResponse, error)
	UpdateMyProfile(userID string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) GetEmployee(viewerUserID string, viewerRole models.UserRole, employeeID string) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "profile", "Employee not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Приватный профиль видят только владелец и системный админ
	if employee.Visibility == models.VisibilityPrivate &&
		employee.UserID != viewerUserID &&
		viewerRole != models.UserRoleSystemAdmin {
		return nil, apperrors.ErrProfileNotPublic
	}

	return buildEmployeeResponse(employee), nil
}

func (s *employeeService) GetMyProfile(userID string) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "profile", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}
	return buildEmployeeResponse(employee), nil
}

func (s *employeeService) UpdateMyProfile(userID string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "profile", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.CurrentPosition != nil {
		employee.CurrentPosition = *req.CurrentPosition
	}
	if req.Bio != nil {
		employee.Bio = *req.Bio
	}
	if req.Skills != nil {
		raw, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		employee.Skills = datatypes.JSON(raw)
	}
	if req.Visibility != nil {
		employee.Visibility = models.ProfileVisibility(*req.Visibility)
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildEmployeeResponse(employee), nil
}
