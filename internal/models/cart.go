package models

import "time"

// CartItem is a line in a user's shopping cart. Selected marks lines included
// in the next checkout; unselected lines survive checkout untouched.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	Color     string    `json:"color,omitempty"`
	Selected  bool      `json:"selected"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
