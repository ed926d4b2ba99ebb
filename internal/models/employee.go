package models

import "gorm.io/datatypes"

type Employee struct {
	BaseModelWithDeleted
	UserID          string `gorm:"type:uuid;not null;uniqueIndex"`
	FullName        string `gorm:"not null"`
	CurrentPosition string
	Bio             string
	Skills          datatypes.JSON    `gorm:"type:jsonb"`
	Visibility      ProfileVisibility `gorm:"type:varchar(10);default:'public'"`

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}
