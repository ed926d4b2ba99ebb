package models

// EmployeeFeedback - структурированная оценка коллеги за квартал.
// Неизменяема после создания: операций update/delete не существует.
// Квартальный ключ (reviewer, rated, company, quarter, year) уникален
// среди неудаленных строк.
type EmployeeFeedback struct {
	BaseModelWithDeleted
	ReviewerID      string `gorm:"type:uuid;not null;index"`
	RatedEmployeeID string `gorm:"type:uuid;not null;index"`
	CompanyID       string `gorm:"type:uuid;not null;index"`

	Professionalism int `gorm:"not null;check:professionalism >= 1 AND professionalism <= 5"`
	Communication   int `gorm:"not null;check:communication >= 1 AND communication <= 5"`
	Teamwork        int `gorm:"not null;check:teamwork >= 1 AND teamwork <= 5"`
	Reliability     int `gorm:"not null;check:reliability >= 1 AND reliability <= 5"`

	WrittenFeedback string
	Quarter         int `gorm:"not null;check:quarter >= 1 AND quarter <= 4"`
	Year            int `gorm:"not null"`

	// Relations
	Reviewer *Employee `gorm:"foreignKey:ReviewerID"`
	Rated    *Employee `gorm:"foreignKey:RatedEmployeeID"`
	Company  *Company  `gorm:"foreignKey:CompanyID"`
}
