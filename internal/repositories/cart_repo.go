package repositories

import "petshop/internal/models"

// CartRepository defines the interface for shopping cart access.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetSelected(userID string) ([]models.CartItem, error)
	Add(item *models.CartItem) error
	UpdateQuantity(id string, quantity int) error
	SetSelected(id string, selected bool) error
	Remove(id string) error
	ClearSelected(userID string) error
	Clear(userID string) error
}
