package services

import (
	"encoding/json"
	"log"
	"time"

	"petshop/internal/apperrors"
	"petshop/internal/models"
	"petshop/internal/payments"
	"petshop/internal/repositories"
)

// PaymentService owns the card payment flow: resolving a usable payment
// intent for an order and reconciling the order after confirmation.
type PaymentService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	gateway   payments.Gateway
	publisher EventPublisher
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	gateway payments.Gateway,
	publisher EventPublisher,
) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		gateway:   gateway,
		publisher: publisher,
	}
}

// ResolveIntent returns a usable payment intent for the order, creating one if
// needed.
//
// An intent already attached to the order is retrieved and reused, so a page
// refresh or retry does not mint a duplicate charge attempt. If retrieval
// fails or the intent is no longer usable (canceled upstream, already
// succeeded), a replacement is created instead of erroring. The new intent id
// is attached to the order before the secret is returned, so a repeated
// resolve observes the same intent.
func (s *PaymentService) ResolveIntent(userID, orderID string) (*payments.Intent, error) {
	order, err := s.ownedOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentIntentID != "" {
		existing, err := s.gateway.RetrieveIntent(order.PaymentIntentID)
		if err == nil && existing.Usable() {
			return existing, nil
		}
		if err != nil {
			log.Printf("Warning: attached intent for order %s not retrievable, creating a new one: %v", orderID, err)
		}
	}

	intent, err := s.gateway.CreateIntent(payments.CreateIntentParams{
		Amount:   order.MinorUnits(),
		Currency: order.Currency,
		Metadata: map[string]string{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
			"userId":      order.UserID,
		},
	})
	if err != nil {
		return nil, err
	}

	// Attach before returning the secret. A concurrent resolve may still race
	// and create a second intent; the stored reference is last-writer-wins and
	// the metadata keeps both reconcilable.
	if err := s.orderRepo.AttachPaymentIntent(order.ID, intent.ID); err != nil {
		log.Printf("Warning: failed to attach intent %s to order %s: %v", intent.ID, order.ID, err)
	}

	return intent, nil
}

// ConfirmPayment submits the payment method for the order's intent and
// reconciles the order with the gateway's result.
//
// On success the order is marked paid and confirmed, stamped with a paid-at
// time, and the user's cart is cleared. On requires_action the intent is
// returned untouched for client-side authentication. On a gateway error the
// order is left pending; a retry re-enters ResolveIntent and reuses the
// intent.
func (s *PaymentService) ConfirmPayment(userID, orderID, paymentMethodID string) (*payments.Intent, error) {
	if paymentMethodID == "" {
		return nil, &apperrors.ValidationError{Field: "PaymentMethodID"}
	}

	order, err := s.ownedOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	intentID := order.PaymentIntentID
	if intentID == "" {
		intent, err := s.ResolveIntent(userID, orderID)
		if err != nil {
			return nil, err
		}
		intentID = intent.ID
	}

	intent, err := s.gateway.ConfirmIntent(intentID, paymentMethodID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case payments.StatusSucceeded:
		paidAt := time.Now()
		if err := s.orderRepo.MarkPaid(order.ID, paidAt); err != nil {
			return intent, err
		}
		if err := s.cartRepo.Clear(userID); err != nil {
			log.Printf("Warning: failed to clear cart for user %s after payment on order %s: %v", userID, order.ID, err)
		}
		s.publishCaptured(order, intent)
		return intent, nil
	case payments.StatusRequiresAction:
		// The browser must re-present the client secret to the gateway SDK
		// for additional authentication. The order stays pending.
		return intent, nil
	default:
		return intent, &apperrors.GatewayError{
			Code:    "unexpected_status",
			Message: "payment was not completed",
		}
	}
}

func (s *PaymentService) ownedOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, &apperrors.NotFoundError{Resource: "order", ID: orderID}
	}
	return order, nil
}

func (s *PaymentService) publishCaptured(order *models.Order, intent *payments.Intent) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
		"intentID":    intent.ID,
		"amount":      intent.Amount,
		"currency":    intent.Currency,
	})
	if err != nil {
		log.Printf("Failed to marshal payment event: %v", err)
		return
	}
	if err := s.publisher.Publish("order", EventPaymentCaptured, body); err != nil {
		log.Printf("Warning: failed to publish payment captured event for order %s: %v", order.ID, err)
	}
}
