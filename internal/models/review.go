package models

import "time"

// CompanyReview - один отзыв сотрудника об одной компании.
// Авторизуется конкретной approved-записью Employment (EmploymentID).
// Личность автора хранится всегда; при is_anonymous=true она скрывается
// на чтении, а не на записи.
type CompanyReview struct {
	BaseModelWithDeleted
	CompanyID    string `gorm:"type:uuid;not null;index"`
	EmployeeID   string `gorm:"type:uuid;not null;index"`
	EmploymentID string `gorm:"type:uuid;not null"`

	OverallRating int    `gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5"`
	Content       string `gorm:"not null"`
	IsAnonymous   bool   `gorm:"default:false"`
	IsPublished   bool   `gorm:"default:true"`

	CanEditUntil time.Time `gorm:"not null"`
	EditedAt     *time.Time

	// Relations
	Company  *Company  `gorm:"foreignKey:CompanyID"`
	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

type Report struct {
	BaseModel
	ReviewID    string `gorm:"type:uuid;not null;index"`
	ReporterID  string `gorm:"type:uuid;not null"`
	Reason      string `gorm:"type:varchar(20);not null"`
	Description string
	Status      string `gorm:"type:varchar(20);default:'pending'"`

	// Relations
	Review *CompanyReview `gorm:"foreignKey:ReviewID"`
}
