package repositories

import (
	"errors"

	"workrate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEmploymentNotFound = errors.New("employment not found")

type EmploymentRepository interface {
	Create(employment *models.Employment) error
	FindByID(id string) (*models.Employment, error)
	// FindActiveByPair возвращает неудаленную запись пары (employee, company)
	// независимо от статуса.
	FindActiveByPair(employeeID, companyID string) (*models.Employment, error)
	// FindApprovedByPair возвращает approved-запись пары.
	FindApprovedByPair(employeeID, companyID string) (*models.Employment, error)
	FindByEmployee(employeeID string) ([]models.Employment, error)
	FindPendingByCompany(companyID string) ([]models.Employment, error)
	Update(employment *models.Employment) error
}

type EmploymentRepositoryImpl struct {
	db *gorm.DB
}

func NewEmploymentRepository(db *gorm.DB) EmploymentRepository {
	return &EmploymentRepositoryImpl{db: db}
}

func (r *EmploymentRepositoryImpl) Create(employment *models.Employment) error {
	return r.db.Create(employment).Error
}

func (r *EmploymentRepositoryImpl) FindByID(id string) (*models.Employment, error) {
	var employment models.Employment
	err := r.db.Preload("Company").Preload("Employee").
		First(&employment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmploymentNotFound
		}
		return nil, err
	}
	return &employment, nil
}

func (r *EmploymentRepositoryImpl) FindActiveByPair(employeeID, companyID string) (*models.Employment, error) {
	var employment models.Employment
	err := r.db.First(&employment, "employee_id = ? AND company_id = ?", employeeID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmploymentNotFound
		}
		return nil, err
	}
	return &employment, nil
}

func (r *EmploymentRepositoryImpl) FindApprovedByPair(employeeID, companyID string) (*models.Employment, error) {
	var employment models.Employment
	err := r.db.First(&employment,
		"employee_id = ? AND company_id = ? AND verification_status = ?",
		employeeID, companyID, models.EmploymentStatusApproved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmploymentNotFound
		}
		return nil, err
	}
	return &employment, nil
}

func (r *EmploymentRepositoryImpl) FindByEmployee(employeeID string) ([]models.Employment, error) {
	var employments []models.Employment
	err := r.db.Preload("Company").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&employments).Error
	return employments, err
}

func (r *EmploymentRepositoryImpl) FindPendingByCompany(companyID string) ([]models.Employment, error) {
	var employments []models.Employment
	err := r.db.Preload("Employee").
		Where("company_id = ? AND verification_status = ?", companyID, models.EmploymentStatusPending).
		Order("created_at DESC").
		Find(&employments).Error
	return employments, err
}

func (r *EmploymentRepositoryImpl) Update(employment *models.Employment) error {
	return r.db.Save(employment).Error
}
