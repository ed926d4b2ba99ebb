package models

// Company - профиль компании, не более одного на аккаунт админа.
// Имя уникально среди неудаленных строк, partial unique index
// создается в database.AutoMigrate.
type Company struct {
	BaseModelWithDeleted
	UserID      string `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string `gorm:"not null;index"`
	Industry    string
	Location    string
	Description string
	Website     string
	LogoURL     string

	// Денормализованный агрегат: пересчитывается синхронно после каждой
	// мутации отзыва (см. ReviewService).
	OverallRating float64 `gorm:"default:0"`
	TotalReviews  int64   `gorm:"default:0"`

	IsVerified bool `gorm:"default:false"`

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}
