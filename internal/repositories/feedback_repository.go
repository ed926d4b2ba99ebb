package repositories

import (
	"errors"

	"workrate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackSummary - средние по категориям для сотрудника
type FeedbackSummary struct {
	Professionalism float64 `json:"professionalism"`
	Communication   float64 `json:"communication"`
	Teamwork        float64 `json:"teamwork"`
	Reliability     float64 `json:"reliability"`
	TotalFeedbacks  int64   `json:"total_feedbacks"`
}

type FeedbackRepository interface {
	Create(feedback *models.EmployeeFeedback) error
	// Exists проверяет квартальный ключ (reviewer, rated, company, quarter, year)
	// среди неудаленных строк.
	Exists(reviewerID, ratedEmployeeID, companyID string, quarter, year int) (bool, error)
	FindReceived(employeeID string, quarter, year int) ([]models.EmployeeFeedback, error)
	SummaryForEmployee(employeeID string) (*FeedbackSummary, error)
}

type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) Create(feedback *models.EmployeeFeedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) Exists(reviewerID, ratedEmployeeID, companyID string, quarter, year int) (bool, error) {
	var count int64
	err := r.db.Model(&models.EmployeeFeedback{}).
		Where("reviewer_id = ? AND rated_employee_id = ? AND company_id = ? AND quarter = ? AND year = ?",
			reviewerID, ratedEmployeeID, companyID, quarter, year).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FeedbackRepositoryImpl) FindReceived(employeeID string, quarter, year int) ([]models.EmployeeFeedback, error) {
	query := r.db.Preload("Reviewer").Preload("Company").
		Where("rated_employee_id = ?", employeeID)
	if quarter > 0 {
		query = query.Where("quarter = ?", quarter)
	}
	if year > 0 {
		query = query.Where("year = ?", year)
	}

	var feedbacks []models.EmployeeFeedback
	err := query.Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepositoryImpl) SummaryForEmployee(employeeID string) (*FeedbackSummary, error) {
	type row struct {
		Professionalism *float64
		Communication   *float64
		Teamwork        *float64
		Reliability     *float64
		Count           int64
	}
	var res row
	err := r.db.Model(&models.EmployeeFeedback{}).
		Select("AVG(professionalism) as professionalism, AVG(communication) as communication, AVG(teamwork) as teamwork, AVG(reliability) as reliability, COUNT(*) as count").
		Where("rated_employee_id = ?", employeeID).
		Scan(&res).Error
	if err != nil {
		return nil, err
	}

	summary := &FeedbackSummary{TotalFeedbacks: res.Count}
	if res.Count > 0 {
		summary.Professionalism = *res.Professionalism
		summary.Communication = *res.Communication
		summary.Teamwork = *res.Teamwork
		summary.Reliability = *res.Reliability
	}
	return summary, nil
}
