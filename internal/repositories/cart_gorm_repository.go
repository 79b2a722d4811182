package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"petshop/internal/apperrors"
	"petshop/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser returns every cart line for a user.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&items).Error; err != nil {
		return nil, &apperrors.PersistenceError{Op: "list cart", Err: err}
	}
	return items, nil
}

// GetSelected returns the cart lines marked for checkout.
func (r *GORMCartRepository) GetSelected(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("user_id = ? AND selected = ?", userID, true).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "list selected cart lines", Err: err}
	}
	return items, nil
}

// Add inserts a cart line. Adding the same product again merges quantities.
func (r *GORMCartRepository) Add(item *models.CartItem) error {
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ? AND color = ?",
		item.UserID, item.ProductID, item.Color).First(&existing).Error
	if err == nil {
		existing.Quantity += item.Quantity
		existing.Selected = true
		if err := r.db.Save(&existing).Error; err != nil {
			return &apperrors.PersistenceError{Op: "merge cart line", Err: err}
		}
		*item = existing
		return nil
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return &apperrors.PersistenceError{Op: "add cart line", Err: err}
	}
	return nil
}

// UpdateQuantity sets the quantity on a cart line.
func (r *GORMCartRepository) UpdateQuantity(id string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "update cart quantity", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "cart item", ID: id}
	}
	return nil
}

// SetSelected toggles a cart line's checkout selection.
func (r *GORMCartRepository) SetSelected(id string, selected bool) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("selected", selected)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "select cart line", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "cart item", ID: id}
	}
	return nil
}

// Remove deletes a cart line.
func (r *GORMCartRepository) Remove(id string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "remove cart line", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "cart item", ID: id}
	}
	return nil
}

// ClearSelected removes the checked-out lines only.
func (r *GORMCartRepository) ClearSelected(userID string) error {
	err := r.db.Where("user_id = ? AND selected = ?", userID, true).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return &apperrors.PersistenceError{Op: "clear selected cart lines", Err: err}
	}
	return nil
}

// Clear empties the user's cart.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return &apperrors.PersistenceError{Op: "clear cart", Err: err}
	}
	return nil
}
