package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petshop/internal/apperrors"
	"petshop/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists the order row. Items are written separately by CreateItems.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	// Omit the association so GORM does not insert items as a side effect.
	if err := r.db.Omit("Items").Create(order).Error; err != nil {
		return &apperrors.PersistenceError{Op: "create order", Err: err}
	}
	return nil
}

// CreateItems persists the order's line items.
func (r *GORMOrderRepository) CreateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(&items).Error; err != nil {
		return &apperrors.PersistenceError{Op: "create order items", Err: err}
	}
	return nil
}

// GetByID retrieves an order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "order", ID: id}
		}
		return nil, &apperrors.PersistenceError{Op: "get order", Err: err}
	}
	return &order, nil
}

// GetByUser retrieves all orders for a user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// AttachPaymentIntent stores the gateway intent reference on the order.
// A concurrent attach overwrites: last writer wins on the stored reference.
func (r *GORMOrderRepository) AttachPaymentIntent(orderID, intentID string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_intent_id", intentID)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "attach payment intent", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "order", ID: orderID}
	}
	return nil
}

// UpdateStatus updates the fulfillment status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "update order status", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "order", ID: id}
	}
	return nil
}

// MarkPaid records a successful payment capture in a single update.
func (r *GORMOrderRepository) MarkPaid(id string, paidAt time.Time) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"status":         models.OrderStatusConfirmed,
			"paid_at":        paidAt,
		})
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "mark order paid", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "order", ID: id}
	}
	return nil
}
