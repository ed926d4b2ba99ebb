package models

import "time"

// Employment - центральная связь сотрудник<->компания.
// Инвариант: не более одной неудаленной записи на пару (employee, company),
// закрыт partial unique index-ом (см. database.AutoMigrate).
type Employment struct {
	BaseModelWithDeleted
	EmployeeID string `gorm:"type:uuid;not null;index"`
	CompanyID  string `gorm:"type:uuid;not null;index"`
	Position   string `gorm:"not null"`
	Department string
	StartDate  time.Time `gorm:"not null"`
	EndDate    *time.Time
	IsCurrent  bool `gorm:"default:true"`

	VerificationStatus EmploymentStatus `gorm:"type:varchar(20);default:'pending';index"`
	VerifiedBy         *string          `gorm:"type:uuid"`
	VerifiedAt         *time.Time
	RejectionNote      *string

	// Relations
	Employee *Employee `gorm:"foreignKey:EmployeeID"`
	Company  *Company  `gorm:"foreignKey:CompanyID"`
}
