package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store catalog.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Images      string          `json:"images" gorm:"type:text"` // JSON array of image URLs
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}
