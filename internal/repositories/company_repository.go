package repositories

import (
	"errors"
	"fmt"

	"workrate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

// CompanyFilter - критерии листинга компаний
type CompanyFilter struct {
	Query     string
	Industry  string
	Location  string
	MinRating *float64
	MaxRating *float64
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// RatingDistribution - распределение оценок 1-5 для компании
type RatingDistribution map[int]int64

type CompanyRepository interface {
	FindByID(id string) (*models.Company, error)
	FindByUserID(userID string) (*models.Company, error)
	FindByName(name string) (*models.Company, error)
	FindWithFilter(filter CompanyFilter) ([]models.Company, int64, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	SoftDelete(id string) error
	UpdateRating(companyID string, rating float64, totalReviews int64) error
	GetRatingDistribution(companyID string) (RatingDistribution, error)
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) FindByID(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByUserID(userID string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByName(name string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

// validCompanySortFields - whitelist сортировок, защита от инъекции в ORDER BY
var validCompanySortFields = map[string]bool{
	"name":           true,
	"overall_rating": true,
	"total_reviews":  true,
	"created_at":     true,
}

func (r *CompanyRepositoryImpl) FindWithFilter(filter CompanyFilter) ([]models.Company, int64, error) {
	query := r.db.Model(&models.Company{})

	if filter.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinRating != nil {
		query = query.Where("overall_rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		query = query.Where("overall_rating <= ?", *filter.MaxRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := "created_at"
	if validCompanySortFields[filter.SortBy] {
		sortField = filter.SortBy
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortField, direction))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var companies []models.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *CompanyRepositoryImpl) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *CompanyRepositoryImpl) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

func (r *CompanyRepositoryImpl) SoftDelete(id string) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}

func (r *CompanyRepositoryImpl) UpdateRating(companyID string, rating float64, totalReviews int64) error {
	return r.db.Model(&models.Company{}).Where("id = ?", companyID).
		Updates(map[string]interface{}{
			"overall_rating": rating,
			"total_reviews":  totalReviews,
		}).Error
}

func (r *CompanyRepositoryImpl) GetRatingDistribution(companyID string) (RatingDistribution, error) {
	type row struct {
		OverallRating int
		Count         int64
	}
	var rows []row
	err := r.db.Model(&models.CompanyReview{}).
		Select("overall_rating, count(*) as count").
		Where("company_id = ? AND is_published = true", companyID).
		Group("overall_rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := make(RatingDistribution, 5)
	for i := 1; i <= 5; i++ {
		dist[i] = 0
	}
	for _, r := range rows {
		dist[r.OverallRating] = r.Count
	}
	return dist, nil
}
