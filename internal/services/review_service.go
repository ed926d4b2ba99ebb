package services

import (
	"errors"
	"time"

	"workrate_backend/internal/logger"
	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ReviewEditWindow - окно редактирования отзыва с момента создания
const ReviewEditWindow = 48 * time.Hour

type ReviewService interface {
	CreateReview(userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetReview(reviewID string) (*dto.ReviewResponse, error)
	GetCompanyReviews(companyID string, criteria dto.ReviewSearchCriteria) (*dto.ReviewListResponse, error)
	GetMyReviews(userID string) ([]*dto.ReviewResponse, error)
	UpdateReview(userID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(userID string, role models.UserRole, reviewID string) error
	ReportReview(reviewID, reporterUserID string, req *dto.ReportReviewRequest) (*dto.ReportResponse, error)
	GetReports(status string, page, pageSize int) ([]models.Report, int64, error)

	// RecalculateCompanyRating синхронно пересчитывает денормализованный
	// агрегат компании. Вызывается после каждой мутации отзыва.
	RecalculateCompanyRating(companyID string) error
}

type reviewService struct {
	reviewRepo     repositories.ReviewRepository
	employmentRepo repositories.EmploymentRepository
	employeeRepo   repositories.EmployeeRepository
	companyRepo    repositories.CompanyRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	employmentRepo repositories.EmploymentRepository,
	employeeRepo repositories.EmployeeRepository,
	companyRepo repositories.CompanyRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		employmentRepo: employmentRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
	}
}

func (s *reviewService) CreateReview(userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	// Отзыв авторизуется конкретной approved-записью трудоустройства
	employment, err := s.employmentRepo.FindApprovedByPair(employee.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmploymentNotFound) {
			return nil, apperrors.ErrNotVerifiedEmployment
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.reviewRepo.FindByPair(employee.ID, req.CompanyID); err == nil {
		return nil, apperrors.ErrDuplicateReview
	} else if !errors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}

	review := &models.CompanyReview{
		CompanyID:     req.CompanyID,
		EmployeeID:    employee.ID,
		EmploymentID:  employment.ID,
		OverallRating: req.OverallRating,
		Content:       req.Content,
		IsAnonymous:   req.IsAnonymous,
		IsPublished:   true,
		CanEditUntil:  time.Now().Add(ReviewEditWindow),
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.RecalculateCompanyRating(req.CompanyID); err != nil {
		return nil, err
	}

	review.Employee = employee
	return s.buildOwnReviewResponse(review), nil
}

func (s *reviewService) GetReview(reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Review not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildPublicReviewResponse(review), nil
}

func (s *reviewService) GetCompanyReviews(companyID string, criteria dto.ReviewSearchCriteria) (*dto.ReviewListResponse, error) {
	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}

	page := criteria.Page
	if page <= 0 {
		page = 1
	}
	pageSize := criteria.Limit
	if pageSize <= 0 {
		pageSize = 10
	}

	reviews, total, err := s.reviewRepo.FindByCompany(companyID, repositories.ReviewFilter{
		SortBy:    criteria.SortBy,
		SortOrder: criteria.SortOrder,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, s.buildPublicReviewResponse(&reviews[i]))
	}

	return &dto.ReviewListResponse{
		Reviews:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

func (s *reviewService) GetMyReviews(userID string) ([]*dto.ReviewResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByEmployee(employee.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		// Автор видит собственную личность и в анонимных отзывах
		responses = append(responses, s.buildOwnReviewResponse(&reviews[i]))
	}
	return responses, nil
}

func (s *reviewService) UpdateReview(userID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	employee, err := s.employeeRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Employee profile not linked to user")
		}
		return nil, apperrors.InternalError(err)
	}

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Review not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Чужой отзыв неотличим от несуществующего
	if review.EmployeeID != employee.ID {
		return nil, apperrors.ErrNotFound(repositories.ErrReviewNotFound, "review", "Review not found")
	}

	// Окно редактирования проверяется независимо от того, что меняется
	if time.Now().After(review.CanEditUntil) {
		return nil, apperrors.ErrEditWindowExpired
	}

	ratingChanged := false
	if req.OverallRating != nil && *req.OverallRating != review.OverallRating {
		review.OverallRating = *req.OverallRating
		ratingChanged = true
	}
	if req.Content != nil {
		review.Content = *req.Content
	}
	now := time.Now()
	review.EditedAt = &now

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if ratingChanged {
		if err := s.RecalculateCompanyRating(review.CompanyID); err != nil {
			return nil, err
		}
	}

	return s.buildOwnReviewResponse(review), nil
}

func (s *reviewService) DeleteReview(userID string, role models.UserRole, reviewID string) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err, "review", "Review not found")
		}
		return apperrors.InternalError(err)
	}

	// Удалять может автор либо системный админ
	if role != models.UserRoleSystemAdmin {
		employee, err := s.employeeRepo.FindByUserID(userID)
		if err != nil || review.EmployeeID != employee.ID {
			return apperrors.ErrInsufficientPermissions
		}
	}

	if err := s.reviewRepo.SoftDelete(review.ID); err != nil {
		return apperrors.InternalError(err)
	}

	return s.RecalculateCompanyRating(review.CompanyID)
}

func (s *reviewService) ReportReview(reviewID, reporterUserID string, req *dto.ReportReviewRequest) (*dto.ReportResponse, error) {
	if !models.IsValidReportReason(req.Reason) {
		return nil, apperrors.ValidationError(map[string]string{"reason": "must be one of: false_info, spam, harassment, other"})
	}

	if _, err := s.reviewRepo.FindByID(reviewID); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Review not found")
		}
		return nil, apperrors.InternalError(err)
	}

	report := &models.Report{
		ReviewID:    reviewID,
		ReporterID:  reporterUserID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.ReportStatusPending,
	}

	if err := s.reviewRepo.CreateReport(report); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ReportResponse{
		ID:        report.ID,
		ReviewID:  report.ReviewID,
		Reason:    report.Reason,
		Status:    report.Status,
		CreatedAt: report.CreatedAt,
	}, nil
}

func (s *reviewService) GetReports(status string, page, pageSize int) ([]models.Report, int64, error) {
	reports, total, err := s.reviewRepo.FindReports(status, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return reports, total, nil
}

func (s *reviewService) RecalculateCompanyRating(companyID string) error {
	agg, err := s.reviewRepo.AggregateForCompany(companyID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	rating := 0.0
	if agg.TotalReviews > 0 {
		rating = roundRating(agg.AverageRating)
	}

	if err := s.companyRepo.UpdateRating(companyID, rating, agg.TotalReviews); err != nil {
		logger.WithError(err).Error("review: failed to update company aggregate", "company_id", companyID)
		return apperrors.InternalError(err)
	}
	return nil
}

// buildPublicReviewResponse скрывает личность автора анонимного отзыва.
// Маскирование выполняется только на чтении, в хранилище личность
// сохраняется для модерации.
func (s *reviewService) buildPublicReviewResponse(review *models.CompanyReview) *dto.ReviewResponse {
	resp := s.buildOwnReviewResponse(review)
	if review.IsAnonymous {
		resp.EmployeeID = nil
		resp.Employee = nil
	}
	return resp
}

func (s *reviewService) buildOwnReviewResponse(review *models.CompanyReview) *dto.ReviewResponse {
	employeeID := review.EmployeeID
	return &dto.ReviewResponse{
		ID:            review.ID,
		CompanyID:     review.CompanyID,
		EmployeeID:    &employeeID,
		OverallRating: review.OverallRating,
		Content:       review.Content,
		IsAnonymous:   review.IsAnonymous,
		CanEditUntil:  review.CanEditUntil,
		EditedAt:      review.EditedAt,
		CreatedAt:     review.CreatedAt,
		Company:       buildCompanyInfo(review.Company),
		Employee:      buildEmployeeInfo(review.Employee),
	}
}
