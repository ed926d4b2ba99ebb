package models

import "time"

type User struct {
	BaseModelWithDeleted
	Email         string   `gorm:"uniqueIndex;not null"`
	PasswordHash  string   `gorm:"not null"`
	Role          UserRole `gorm:"type:varchar(20);not null"`
	EmailVerified bool     `gorm:"default:false"`
	IsActive      bool     `gorm:"default:true"`

	// Relations
	Employee      *Employee      `gorm:"foreignKey:UserID"`
	Company       *Company       `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

// RefreshToken - непрозрачный токен с ротацией: одноразовый, отзываемый.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	IsRevoked bool      `gorm:"default:false"`
}

type EmailVerificationToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
}

type PasswordResetToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
}
