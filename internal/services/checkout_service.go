package services

import (
	"encoding/json"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"petshop/internal/apperrors"
	"petshop/internal/models"
	"petshop/internal/repositories"
)

// CheckoutRequest is the shipping form plus chosen payment method. Postal code
// is the only optional address field.
type CheckoutRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Line1         string `json:"line1" validate:"required"`
	Line2         string `json:"line2"`
	City          string `json:"city" validate:"required"`
	Region        string `json:"region" validate:"required"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card cod"`
}

// CheckoutService orchestrates order placement: form validation, totals,
// persistence, event publication, and the COD short-circuit.
type CheckoutService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	publisher   EventPublisher
	validate    *validator.Validate
	shippingFee decimal.Decimal
	currency    string
}

// NewCheckoutService creates a new CheckoutService. shippingFee is the flat
// rate applied once per order with at least one selected line.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	cartRepo repositories.CartRepository,
	publisher EventPublisher,
	shippingFee decimal.Decimal,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
		validate:    validator.New(),
		shippingFee: shippingFee,
		currency:    currency,
	}
}

// PlaceOrder validates the shipping form, prices the selected cart lines, and
// persists the order followed by its items.
//
// The two writes are sequential and unguarded: if the item write fails the
// pending order stays behind for reconciliation and the error is surfaced with
// the partial order. COD orders are confirmed immediately and the selected
// cart lines cleared; card orders stay pending with the cart untouched until
// payment confirmation succeeds.
func (s *CheckoutService) PlaceOrder(userID string, req CheckoutRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(validationErrors) == 0 {
			return nil, &apperrors.ValidationError{Field: "request"}
		}
		return nil, &apperrors.ValidationError{Field: validationErrors[0].Field()}
	}

	selected, err := s.cartRepo.GetSelected(userID)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, &apperrors.ValidationError{Field: "Items"}
	}

	// Price every line from the catalog so the captured unit price never
	// follows a later product price change.
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(selected))
	for _, line := range selected {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if line.Quantity < 1 {
			return nil, &apperrors.ValidationError{Field: "Quantity"}
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Color:     line.Color,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shippingFee := s.shippingFee
	total := subtotal.Add(shippingFee)

	order := &models.Order{
		UserID:        userID,
		OrderNumber:   GenerateOrderNumber(),
		Subtotal:      subtotal,
		ShippingFee:   shippingFee,
		TotalAmount:   total,
		Currency:      s.currency,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		ShippingAddress: models.ShippingAddress{
			FullName:   req.FullName,
			Line1:      req.Line1,
			Line2:      req.Line2,
			City:       req.City,
			Region:     req.Region,
			PostalCode: req.PostalCode,
			Phone:      req.Phone,
		},
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orderRepo.CreateItems(items); err != nil {
		// The order row already exists; leave it pending and itemless for
		// admin reconciliation, but surface the failure to the caller.
		return order, err
	}
	order.Items = items

	s.publishEvent(EventOrderCreated, order)

	if req.PaymentMethod == models.PaymentMethodCOD {
		if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusConfirmed); err != nil {
			return order, err
		}
		order.Status = models.OrderStatusConfirmed
		if err := s.cartRepo.ClearSelected(userID); err != nil {
			log.Printf("Warning: failed to clear cart for user %s after COD order %s: %v", userID, order.ID, err)
		}
		s.publishEvent(EventOrderConfirmed, order)
	}

	return order, nil
}

func (s *CheckoutService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
		"status":      order.Status,
		"total":       order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
