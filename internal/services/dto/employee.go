package dto

import "time"

// ======================
// Request DTOs
// ======================

type UpdateEmployeeRequest struct {
	FullName        *string  `json:"full_name,omitempty" validate:"omitempty,max=200"`
	CurrentPosition *string  `json:"current_position,omitempty" validate:"omitempty,max=200"`
	Bio             *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Skills          []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=100"`
	Visibility      *string  `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// ======================
// Response DTOs
// ======================

type EmployeeResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name"`
	CurrentPosition string    `json:"current_position,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Visibility      string    `json:"visibility"`
	CreatedAt       time.Time `json:"created_at"`
}
