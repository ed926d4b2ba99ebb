package services

import (
	"errors"

	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// FeedbackService - структурированный фидбек между коллегами.
// Один фидбек на квартальный ключ, запись неизменяема.
type FeedbackService interface {
	CreateFeedback(userID string, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	GetReceivedFeedback(userID string, criteria dto.ReceivedFeedbackCriteria) (*dto.FeedbackListResponse, error)
	GetMyFeedbackSummary(userID string) (*repositories.FeedbackSummary, error)
}

type feedbackService struct {
	feedbackRepo   repositories.FeedbackRepository
	employmentRepo repositories.EmploymentRepository
	employeeRepo   repositories.EmployeeRepository
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	employmentRepo repositories.EmploymentRepository,
	employeeRepo repositories.EmployeeRepository,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		employmentRepo: employmentRepo,
		employeeRepo:   employeeRepo,
	}
}

func (s *feedbackService) CreateFeedback(userID string, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	reviewer, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "feedback", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	if reviewer.ID == req.RatedEmployeeID {
		return nil, apperrors.ErrSelfFeedback
	}

	if _, err := s.employeeRepo.FindByID(req.RatedEmployeeID); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "feedback", "Rated employee not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Оба участника независимо должны иметь approved-трудоустройство
	// в этой компании. Записи не обязаны совпадать или пересекаться
	// по датам - это намеренно мягкое доказательство "коллег".
	if err := s.requireApproved(reviewer.ID, req.CompanyID); err != nil {
		return nil, err
	}
	if err := s.requireApproved(req.RatedEmployeeID, req.CompanyID); err != nil {
		return nil, err
	}

	exists, err := s.feedbackRepo.Exists(reviewer.ID, req.RatedEmployeeID, req.CompanyID, req.Quarter, req.Year)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrFeedbackExists
	}

	feedback := &models.EmployeeFeedback{
		ReviewerID:      reviewer.ID,
		RatedEmployeeID: req.RatedEmployeeID,
		CompanyID:       req.CompanyID,
		Professionalism: req.Professionalism,
		Communication:   req.Communication,
		Teamwork:        req.Teamwork,
		Reliability:     req.Reliability,
		WrittenFeedback: req.WrittenFeedback,
		Quarter:         req.Quarter,
		Year:            req.Year,
	}

	if err := s.feedbackRepo.Create(feedback); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrFeedbackExists
		}
		return nil, apperrors.InternalError(err)
	}

	return buildFeedbackResponse(feedback), nil
}

func (s *feedbackService) GetReceivedFeedback(userID string, criteria dto.ReceivedFeedbackCriteria) (*dto.FeedbackListResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "feedback", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	feedbacks, err := s.feedbackRepo.FindReceived(employee.ID, criteria.Quarter, criteria.Year)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		responses = append(responses, buildFeedbackResponse(&feedbacks[i]))
	}

	return &dto.FeedbackListResponse{
		Feedbacks: responses,
		Total:     len(responses),
	}, nil
}

func (s *feedbackService) GetMyFeedbackSummary(userID string) (*repositories.FeedbackSummary, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "feedback", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	summary, err := s.feedbackRepo.SummaryForEmployee(employee.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return summary, nil
}

func (s *feedbackService) requireApproved(employeeID, companyID string) error {
	if _, err := s.employmentRepo.FindApprovedByPair(employeeID, companyID); err != nil {
		if errors.Is(err, repositories.ErrEmploymentNotFound) {
			return apperrors.ErrFeedbackNotAllowed
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func buildFeedbackResponse(feedback *models.EmployeeFeedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:              feedback.ID,
		ReviewerID:      feedback.ReviewerID,
		RatedEmployeeID: feedback.RatedEmployeeID,
		CompanyID:       feedback.CompanyID,
		Professionalism: feedback.Professionalism,
		Communication:   feedback.Communication,
		Teamwork:        feedback.Teamwork,
		Reliability:     feedback.Reliability,
		WrittenFeedback: feedback.WrittenFeedback,
		Quarter:         feedback.Quarter,
		Year:            feedback.Year,
		CreatedAt:       feedback.CreatedAt,
		Reviewer:        buildEmployeeInfo(feedback.Reviewer),
		Company:         buildCompanyInfo(feedback.Company),
	}
}
