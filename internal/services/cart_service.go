package services

import (
	"github.com/shopspring/decimal"

	"petshop/internal/apperrors"
	"petshop/internal/models"
	"petshop/internal/repositories"
)

// CartSummary is the priced view of the lines selected for checkout.
// Invariant: Total = Subtotal + ShippingFee, with the flat fee applied once
// iff at least one line is selected.
type CartSummary struct {
	Items       []models.CartItem `json:"items"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	ShippingFee decimal.Decimal   `json:"shipping_fee"`
	Total       decimal.Decimal   `json:"total"`
	ItemCount   int               `json:"item_count"`
}

// CartService handles the shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	shippingFee decimal.Decimal
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, shippingFee decimal.Decimal) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		shippingFee: shippingFee,
	}
}

// GetCart returns every cart line for the user.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUser(userID)
}

// AddItem puts a product in the user's cart, verifying it exists and has
// stock to cover the requested quantity.
func (s *CartService) AddItem(userID string, item *models.CartItem) error {
	if item.Quantity < 1 {
		return &apperrors.ValidationError{Field: "Quantity"}
	}
	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if product.Stock < item.Quantity {
		return &apperrors.ValidationError{Field: "Quantity"}
	}
	item.UserID = userID
	item.Selected = true
	return s.cartRepo.Add(item)
}

// UpdateQuantity changes the quantity on a cart line.
func (s *CartService) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return &apperrors.ValidationError{Field: "Quantity"}
	}
	return s.cartRepo.UpdateQuantity(id, quantity)
}

// SetSelected marks a line in or out of the next checkout.
func (s *CartService) SetSelected(id string, selected bool) error {
	return s.cartRepo.SetSelected(id, selected)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(id string) error {
	return s.cartRepo.Remove(id)
}

// Summary prices the selected lines. The flat shipping fee applies once when
// anything is selected, zero otherwise.
func (s *CartService) Summary(userID string) (*CartSummary, error) {
	selected, err := s.cartRepo.GetSelected(userID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	itemCount := 0
	for _, line := range selected {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		itemCount += line.Quantity
	}

	shippingFee := decimal.Zero
	if len(selected) > 0 {
		shippingFee = s.shippingFee
	}

	return &CartSummary{
		Items:       selected,
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal.Add(shippingFee),
		ItemCount:   itemCount,
	}, nil
}
