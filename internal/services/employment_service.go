package services

import (
	"errors"
	"time"

	"workrate_backend/internal/email"
	"workrate_backend/internal/logger"
	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DefaultRejectionNote используется, если админ не указал причину отказа
const DefaultRejectionNote = "Rejected"

// EmploymentService - машина состояний верификации трудоустройства.
// Единственные ворота, определяющие право на отзывы и фидбек.
type EmploymentService interface {
	RequestEmployment(userID string, req *dto.RequestEmploymentRequest) (*dto.EmploymentResponse, error)
	GetMyEmployments(userID string) ([]*dto.EmploymentResponse, error)
	GetPendingForCompany(adminUserID string) ([]*dto.EmploymentResponse, error)
	Approve(employmentID, adminUserID string) (*dto.EmploymentResponse, error)
	Reject(employmentID, adminUserID string, req *dto.RejectEmploymentRequest) (*dto.EmploymentResponse, error)
	End(employmentID, userID string, req *dto.EndEmploymentRequest) (*dto.EmploymentResponse, error)
}

type employmentService struct {
	employmentRepo repositories.EmploymentRepository
	employeeRepo   repositories.EmployeeRepository
	companyRepo    repositories.CompanyRepository
	userRepo       repositories.UserRepository
	emailProvider  email.Provider
}

func NewEmploymentService(
	employmentRepo repositories.EmploymentRepository,
	employeeRepo repositories.EmployeeRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) EmploymentService {
	return &employmentService{
		employmentRepo: employmentRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		emailProvider:  emailProvider,
	}
}

func (s *employmentService) RequestEmployment(userID string, req *dto.RequestEmploymentRequest) (*dto.EmploymentResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "employment", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	company, err := s.companyRepo.FindByID(req.CompanyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err, "employment", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Предварительная проверка дубликата; гонка закрыта partial unique
	// index-ом на (employee_id, company_id).
	if _, err := s.employmentRepo.FindActiveByPair(employee.ID, company.ID); err == nil {
		return nil, apperrors.ErrEmploymentExists
	} else if !errors.Is(err, repositories.ErrEmploymentNotFound) {
		return nil, apperrors.InternalError(err)
	}

	employment := &models.Employment{
		EmployeeID:         employee.ID,
		CompanyID:          company.ID,
		Position:           req.Position,
		Department:         req.Department,
		StartDate:          req.StartDate,
		IsCurrent:          true,
		VerificationStatus: models.EmploymentStatusPending,
	}

	if err := s.employmentRepo.Create(employment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmploymentExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Уведомление админа компании - best-effort, не откатывает запрос
	go s.notifyCompanyAdmin(company, employee)

	employment.Company = company
	return buildEmploymentResponse(employment), nil
}

func (s *employmentService) GetMyEmployments(userID string) ([]*dto.EmploymentResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "employment", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	employments, err := s.employmentRepo.FindByEmployee(employee.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.EmploymentResponse, 0, len(employments))
	for i := range employments {
		responses = append(responses, buildEmploymentResponse(&employments[i]))
	}
	return responses, nil
}

func (s *employmentService) GetPendingForCompany(adminUserID string) ([]*dto.EmploymentResponse, error) {
	company, err := s.companyRepo.FindByUserID(adminUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err, "employment", "Company not found for admin")
		}
		return nil, apperrors.InternalError(err)
	}

	employments, err := s.employmentRepo.FindPendingByCompany(company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.EmploymentResponse, 0, len(employments))
	for i := range employments {
		responses = append(responses, buildEmploymentResponse(&employments[i]))
	}
	return responses, nil
}

func (s *employmentService) Approve(employmentID, adminUserID string) (*dto.EmploymentResponse, error) {
	employment, company, err := s.findForAdmin(employmentID, adminUserID)
	if err != nil {
		return nil, err
	}

	if employment.VerificationStatus != models.EmploymentStatusPending {
		return nil, apperrors.ErrEmploymentNotPending
	}

	now := time.Now()
	employment.VerificationStatus = models.EmploymentStatusApproved
	employment.VerifiedBy = &adminUserID
	employment.VerifiedAt = &now
	employment.RejectionNote = nil

	if err := s.employmentRepo.Update(employment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	go s.notifyEmployee(employment, company, "approved", "")

	return buildEmploymentResponse(employment), nil
}

func (s *employmentService) Reject(employmentID, adminUserID string, req *dto.RejectEmploymentRequest) (*dto.EmploymentResponse, error) {
	employment, company, err := s.findForAdmin(employmentID, adminUserID)
	if err != nil {
		return nil, err
	}

	if employment.VerificationStatus != models.EmploymentStatusPending {
		return nil, apperrors.ErrEmploymentNotPending
	}

	note := DefaultRejectionNote
	if req != nil && req.RejectionNote != "" {
		note = req.RejectionNote
	}

	employment.VerificationStatus = models.EmploymentStatusRejected
	employment.RejectionNote = &note
	employment.VerifiedBy = nil
	employment.VerifiedAt = nil

	if err := s.employmentRepo.Update(employment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	go s.notifyEmployee(employment, company, "rejected", note)

	return buildEmploymentResponse(employment), nil
}

func (s *employmentService) End(employmentID, userID string, req *dto.EndEmploymentRequest) (*dto.EmploymentResponse, error) {
	if req == nil || req.EndDate.IsZero() {
		return nil, apperrors.ValidationError(map[string]string{"end_date": "is required"})
	}

	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "employment", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	employment, err := s.employmentRepo.FindByID(employmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmploymentNotFound) {
			return nil, apperrors.ErrNotFound(err, "employment", "Employment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Завершить можно только собственное трудоустройство
	if employment.EmployeeID != employee.ID {
		return nil, apperrors.ErrNotFound(repositories.ErrEmploymentNotFound, "employment", "Employment not found")
	}

	if !employment.IsCurrent {
		return nil, apperrors.ErrEmploymentEnded
	}

	endDate := req.EndDate
	employment.EndDate = &endDate
	employment.IsCurrent = false

	if err := s.employmentRepo.Update(employment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildEmploymentResponse(employment), nil
}

// findForAdmin загружает employment и проверяет, что он принадлежит компании
// вызывающего админа. Чужие записи неотличимы от несуществующих (404):
// админ одной компании не должен узнать о наличии записи другой.
func (s *employmentService) findForAdmin(employmentID, adminUserID string) (*models.Employment, *models.Company, error) {
	company, err := s.companyRepo.FindByUserID(adminUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, nil, apperrors.ErrNotFound(err, "employment", "Company not found for admin")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	employment, err := s.employmentRepo.FindByID(employmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmploymentNotFound) {
			return nil, nil, apperrors.ErrNotFound(err, "employment", "Employment not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if employment.CompanyID != company.ID {
		return nil, nil, apperrors.ErrNotFound(repositories.ErrEmploymentNotFound, "employment", "Employment not found")
	}

	return employment, company, nil
}

func (s *employmentService) notifyCompanyAdmin(company *models.Company, employee *models.Employee) {
	admin, err := s.userRepo.FindByID(company.UserID)
	if err != nil {
		logger.WithError(err).Warn("employment: failed to resolve company admin for notification", "company_id", company.ID)
		return
	}
	if err := s.emailProvider.SendEmploymentRequested(admin.Email, employee.FullName, company.Name); err != nil {
		logger.WithError(err).Warn("employment: failed to send request notification", "company_id", company.ID)
	}
}

func (s *employmentService) notifyEmployee(employment *models.Employment, company *models.Company, status, note string) {
	employee := employment.Employee
	if employee == nil {
		var err error
		employee, err = s.employeeRepo.FindByID(employment.EmployeeID)
		if err != nil {
			logger.WithError(err).Warn("employment: failed to resolve employee for notification", "employment_id", employment.ID)
			return
		}
	}

	user, err := s.userRepo.FindByID(employee.UserID)
	if err != nil {
		logger.WithError(err).Warn("employment: failed to resolve employee user for notification", "employment_id", employment.ID)
		return
	}

	if err := s.emailProvider.SendEmploymentDecision(user.Email, company.Name, status, note); err != nil {
		logger.WithError(err).Warn("employment: failed to send decision notification", "employment_id", employment.ID)
	}
}

func buildEmploymentResponse(employment *models.Employment) *dto.EmploymentResponse {
	return &dto.EmploymentResponse{
		ID:                 employment.ID,
		EmployeeID:         employment.EmployeeID,
		CompanyID:          employment.CompanyID,
		Position:           employment.Position,
		Department:         employment.Department,
		StartDate:          employment.StartDate,
		EndDate:            employment.EndDate,
		IsCurrent:          employment.IsCurrent,
		VerificationStatus: string(employment.VerificationStatus),
		VerifiedAt:         employment.VerifiedAt,
		RejectionNote:      employment.RejectionNote,
		CreatedAt:          employment.CreatedAt,
		Company:            buildCompanyInfo(employment.Company),
		Employee:           buildEmployeeInfo(employment.Employee),
	}
}
