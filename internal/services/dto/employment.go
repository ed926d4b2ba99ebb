package dto

import "time"

// ======================
// Request DTOs
// ======================

type RequestEmploymentRequest struct {
	CompanyID  string    `json:"company_id" validate:"required,uuid"`
	Position   string    `json:"position" validate:"required,max=200"`
	Department string    `json:"department" validate:"omitempty,max=200"`
	StartDate  time.Time `json:"start_date" validate:"required"`
}

type RejectEmploymentRequest struct {
	RejectionNote string `json:"rejection_note" validate:"omitempty,max=500"`
}

type EndEmploymentRequest struct {
	EndDate time.Time `json:"end_date" validate:"required"`
}

// ======================
// Response DTOs
// ======================

type EmploymentResponse struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	CompanyID          string     `json:"company_id"`
	Position           string     `json:"position"`
	Department         string     `json:"department,omitempty"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	IsCurrent          bool       `json:"is_current"`
	VerificationStatus string     `json:"verification_status"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	RejectionNote      *string    `json:"rejection_note,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	Company  *CompanyInfo  `json:"company,omitempty"`
	Employee *EmployeeInfo `json:"employee,omitempty"`
}

// ======================
// Expanded Info DTOs
// ======================

type CompanyInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Location string `json:"location,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

type EmployeeInfo struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	CurrentPosition string `json:"current_position,omitempty"`
}
