package repositories

import (
	"time"

	"petshop/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// Create persists the order row only; CreateItems is a deliberately separate
// second write. An order left without items after a failed CreateItems stays
// visible in `pending` for later reconciliation.
type OrderRepository interface {
	Create(order *models.Order) error
	CreateItems(items []models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	AttachPaymentIntent(orderID, intentID string) error
	UpdateStatus(id string, status string) error
	MarkPaid(id string, paidAt time.Time) error
}
