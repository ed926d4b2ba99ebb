package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateReviewRequest struct {
	CompanyID     string `json:"company_id" validate:"required,uuid"`
	OverallRating int    `json:"overall_rating" validate:"required,min=1,max=5"`
	Content       string `json:"content" validate:"required,min=50,max=2000"`
	IsAnonymous   bool   `json:"is_anonymous"`
}

type UpdateReviewRequest struct {
	OverallRating *int    `json:"overall_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Content       *string `json:"content,omitempty" validate:"omitempty,min=50,max=2000"`
}

type ReportReviewRequest struct {
	Reason      string `json:"reason" validate:"required,report-reason"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// ReviewSearchCriteria - параметры листинга отзывов компании
type ReviewSearchCriteria struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at overall_rating"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// ======================
// Response DTOs
// ======================

// ReviewResponse: для анонимных отзывов EmployeeID и Employee обнуляются
// при сборке ответа, в хранилище личность сохраняется.
type ReviewResponse struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	EmployeeID    *string    `json:"employee_id"`
	OverallRating int        `json:"overall_rating"`
	Content       string     `json:"content"`
	IsAnonymous   bool       `json:"is_anonymous"`
	CanEditUntil  time.Time  `json:"can_edit_until"`
	EditedAt      *time.Time `json:"edited_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	Company  *CompanyInfo  `json:"company,omitempty"`
	Employee *EmployeeInfo `json:"employee,omitempty"`
}

type ReviewListResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type ReportResponse struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"review_id"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
