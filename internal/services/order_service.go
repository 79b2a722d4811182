package services

import (
	"fmt"

	"petshop/internal/apperrors"
	"petshop/internal/models"
	"petshop/internal/repositories"
)

// OrderService handles order history and the admin status workflow.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetUserOrders retrieves the caller's orders, newest first.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrder retrieves a single order owned by the caller. Orders belonging to
// other users are reported as not found.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, &apperrors.NotFoundError{Resource: "order", ID: orderID}
	}
	return order, nil
}

// UpdateOrderStatus moves an order through the fulfillment workflow. Terminal
// states (delivered, cancelled) are only ever set through this path.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusConfirmed:  true,
		models.OrderStatusProcessing: true,
		models.OrderStatusShipped:    true,
		models.OrderStatusDelivered:  true,
		models.OrderStatusCancelled:  true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("invalid order status: %s", status)
	}
	return s.orderRepo.UpdateStatus(id, status)
}
