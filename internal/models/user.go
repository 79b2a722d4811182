package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer account.
type User struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string         `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string         `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	FullName  string         `json:"full_name" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Phone     string         `json:"phone" gorm:"type:varchar(32)" validate:"omitempty,max=32"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
