package repositories

import (
	"errors"
	"fmt"

	"workrate_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReportNotFound = errors.New("report not found")
)

// ReviewFilter - критерии листинга отзывов компании
type ReviewFilter struct {
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ReviewAggregate - результат пересчета агрегата по компании
type ReviewAggregate struct {
	AverageRating float64
	TotalReviews  int64
}

type ReviewRepository interface {
	Create(review *models.CompanyReview) error
	FindByID(id string) (*models.CompanyReview, error)
	// FindByPair возвращает неудаленный отзыв пары (employee, company).
	FindByPair(employeeID, companyID string) (*models.CompanyReview, error)
	FindByCompany(companyID string, filter ReviewFilter) ([]models.CompanyReview, int64, error)
	FindByEmployee(employeeID string) ([]models.CompanyReview, error)
	Update(review *models.CompanyReview) error
	SoftDelete(id string) error
	// AggregateForCompany считает среднее по published, неудаленным отзывам.
	AggregateForCompany(companyID string) (*ReviewAggregate, error)

	// Reports
	CreateReport(report *models.Report) error
	FindReports(status string, page, pageSize int) ([]models.Report, int64, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.CompanyReview) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.CompanyReview, error) {
	var review models.CompanyReview
	err := r.db.Preload("Company").Preload("Employee").
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByPair(employeeID, companyID string) (*models.CompanyReview, error) {
	var review models.CompanyReview
	err := r.db.First(&review, "employee_id = ? AND company_id = ?", employeeID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// validReviewSortFields - whitelist сортировок
var validReviewSortFields = map[string]bool{
	"created_at":     true,
	"overall_rating": true,
}

func (r *ReviewRepositoryImpl) FindByCompany(companyID string, filter ReviewFilter) ([]models.CompanyReview, int64, error) {
	query := r.db.Model(&models.CompanyReview{}).
		Where("company_id = ? AND is_published = true", companyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := "created_at"
	if validReviewSortFields[filter.SortBy] {
		sortField = filter.SortBy
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	var reviews []models.CompanyReview
	err := query.Preload("Employee").
		Order(fmt.Sprintf("%s %s", sortField, direction)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) FindByEmployee(employeeID string) ([]models.CompanyReview, error) {
	var reviews []models.CompanyReview
	err := r.db.Preload("Company").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) Update(review *models.CompanyReview) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepositoryImpl) SoftDelete(id string) error {
	return r.db.Delete(&models.CompanyReview{}, "id = ?", id).Error
}

func (r *ReviewRepositoryImpl) AggregateForCompany(companyID string) (*ReviewAggregate, error) {
	type row struct {
		Avg   *float64
		Count int64
	}
	var res row
	err := r.db.Model(&models.CompanyReview{}).
		Select("AVG(overall_rating) as avg, COUNT(*) as count").
		Where("company_id = ? AND is_published = true", companyID).
		Scan(&res).Error
	if err != nil {
		return nil, err
	}

	agg := &ReviewAggregate{TotalReviews: res.Count}
	if res.Avg != nil {
		agg.AverageRating = *res.Avg
	}
	return agg, nil
}

// Reports

func (r *ReviewRepositoryImpl) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReviewRepositoryImpl) FindReports(status string, page, pageSize int) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.Preload("Review").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
