package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Industry    string `json:"industry" validate:"required,max=100"`
	Location    string `json:"location" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Website     string `json:"website" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// CompanySearchCriteria - параметры листинга компаний
type CompanySearchCriteria struct {
	Query     string   `form:"query"`
	Industry  string   `form:"industry"`
	Location  string   `form:"location"`
	MinRating *float64 `form:"min_rating" validate:"omitempty,min=0,max=5"`
	MaxRating *float64 `form:"max_rating" validate:"omitempty,min=0,max=5"`
	SortBy    string   `form:"sort_by" validate:"omitempty,oneof=name overall_rating total_reviews created_at"`
	SortOrder string   `form:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page      int      `form:"page" validate:"omitempty,min=1"`
	Limit     int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ======================
// Response DTOs
// ======================

type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	Location      string    `json:"location"`
	Description   string    `json:"description,omitempty"`
	Website       string    `json:"website,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty"`
	OverallRating float64   `json:"overall_rating"`
	TotalReviews  int64     `json:"total_reviews"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

type CompanyListResponse struct {
	Companies  []*CompanyResponse `json:"companies"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type CompanyStatsResponse struct {
	CompanyID          string        `json:"company_id"`
	OverallRating      float64       `json:"overall_rating"`
	TotalReviews       int64         `json:"total_reviews"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}
