package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"petshop/internal/apperrors"
	"petshop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	items  map[string][]models.OrderItem // keyed by order ID
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		items:  make(map[string][]models.OrderItem),
	}
}

// Create adds a new order row.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	stored := *order
	stored.Items = nil
	r.orders[order.ID] = stored
	return nil
}

// CreateItems adds line items for an order.
func (r *MockOrderRepository) CreateItems(items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		r.items[items[i].OrderID] = append(r.items[items[i].OrderID], items[i])
	}
	return nil
}

// GetByID returns an order with its items.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "order", ID: id}
	}
	order.Items = append([]models.OrderItem(nil), r.items[id]...)
	return &order, nil
}

// GetByUser returns all orders for a user, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for id, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		order.Items = append([]models.OrderItem(nil), r.items[id]...)
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// AttachPaymentIntent stores the gateway intent reference on an order.
func (r *MockOrderRepository) AttachPaymentIntent(orderID, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return &apperrors.NotFoundError{Resource: "order", ID: orderID}
	}
	order.PaymentIntentID = intentID
	order.UpdatedAt = time.Now()
	r.orders[orderID] = order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return &apperrors.NotFoundError{Resource: "order", ID: id}
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// MarkPaid records a successful payment capture.
func (r *MockOrderRepository) MarkPaid(id string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return &apperrors.NotFoundError{Resource: "order", ID: id}
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.Status = models.OrderStatusConfirmed
	order.PaidAt = &paidAt
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
