package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"petshop/internal/apperrors"
	"petshop/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

// GetByUser returns every cart line for a user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetSelected returns the cart lines marked for checkout.
func (r *MockCartRepository) GetSelected(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.UserID == userID && item.Selected {
			items = append(items, item)
		}
	}
	return items, nil
}

// Add inserts a cart line.
func (r *MockCartRepository) Add(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// UpdateQuantity sets the quantity on a cart line.
func (r *MockCartRepository) UpdateQuantity(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return &apperrors.NotFoundError{Resource: "cart item", ID: id}
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

// SetSelected toggles a cart line's checkout selection.
func (r *MockCartRepository) SetSelected(id string, selected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return &apperrors.NotFoundError{Resource: "cart item", ID: id}
	}
	item.Selected = selected
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

// Remove deletes a cart line.
func (r *MockCartRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return &apperrors.NotFoundError{Resource: "cart item", ID: id}
	}
	delete(r.items, id)
	return nil
}

// ClearSelected removes the checked-out lines only.
func (r *MockCartRepository) ClearSelected(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID && item.Selected {
			delete(r.items, id)
		}
	}
	return nil
}

// Clear empties the user's cart.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}
