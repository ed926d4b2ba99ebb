package repositories

import (
	"errors"

	"workrate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	FindByID(id string) (*models.Employee, error)
	FindByUserID(userID string) (*models.Employee, error)
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
}

type EmployeeRepositoryImpl struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

func (r *EmployeeRepositoryImpl) FindByID(id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepositoryImpl) FindByUserID(userID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepositoryImpl) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *EmployeeRepositoryImpl) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}
