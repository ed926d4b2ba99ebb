package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateFeedbackRequest struct {
	RatedEmployeeID string `json:"rated_employee_id" validate:"required,uuid"`
	CompanyID       string `json:"company_id" validate:"required,uuid"`

	Professionalism int `json:"professionalism" validate:"required,min=1,max=5"`
	Communication   int `json:"communication" validate:"required,min=1,max=5"`
	Teamwork        int `json:"teamwork" validate:"required,min=1,max=5"`
	Reliability     int `json:"reliability" validate:"required,min=1,max=5"`

	WrittenFeedback string `json:"written_feedback" validate:"omitempty,max=1000"`
	Quarter         int    `json:"quarter" validate:"required,min=1,max=4"`
	Year            int    `json:"year" validate:"required,min=2000,max=2100"`
}

// ReceivedFeedbackCriteria - фильтр полученного фидбека
type ReceivedFeedbackCriteria struct {
	Quarter int `form:"quarter" validate:"omitempty,min=1,max=4"`
	Year    int `form:"year" validate:"omitempty,min=2000,max=2100"`
}

// ======================
// Response DTOs
// ======================

type FeedbackResponse struct {
	ID              string    `json:"id"`
	ReviewerID      string    `json:"reviewer_id"`
	RatedEmployeeID string    `json:"rated_employee_id"`
	CompanyID       string    `json:"company_id"`
	Professionalism int       `json:"professionalism"`
	Communication   int       `json:"communication"`
	Teamwork        int       `json:"teamwork"`
	Reliability     int       `json:"reliability"`
	WrittenFeedback string    `json:"written_feedback,omitempty"`
	Quarter         int       `json:"quarter"`
	Year            int       `json:"year"`
	CreatedAt       time.Time `json:"created_at"`

	Reviewer *EmployeeInfo `json:"reviewer,omitempty"`
	Company  *CompanyInfo  `json:"company,omitempty"`
}

type FeedbackListResponse struct {
	Feedbacks []*FeedbackResponse `json:"feedbacks"`
	Total     int                 `json:"total"`
}
