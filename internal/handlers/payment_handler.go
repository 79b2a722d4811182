package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"petshop/internal/apperrors"
	"petshop/internal/middleware"
	"petshop/internal/payments"
	"petshop/internal/services"
)

// PaymentHandler handles HTTP requests for the card payment flow.
type PaymentHandler struct {
	service        *services.PaymentService
	publishableKey string
	currency       string
}

// NewPaymentHandler creates a new PaymentHandler. publishableKey is the
// gateway's client-side key served to the SPA.
func NewPaymentHandler(service *services.PaymentService, publishableKey, currency string) *PaymentHandler {
	return &PaymentHandler{
		service:        service,
		publishableKey: publishableKey,
		currency:       currency,
	}
}

// RegisterRoutes registers the payment routes. auth guards them at the route
// level so the sibling public routes stay reachable without a token.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/create-payment-intent", auth, h.HandleCreatePaymentIntent)
	router.Post("/confirm-payment", auth, h.HandleConfirmPayment)
}

// RegisterPublicRoutes registers routes the SPA calls before login.
func (h *PaymentHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/payment-config", h.HandlePaymentConfig)
}

// CreatePaymentIntentRequest is the body of POST /create-payment-intent.
type CreatePaymentIntentRequest struct {
	OrderID string `json:"orderId"`
}

// HandleCreatePaymentIntent resolves a usable payment intent for an order and
// returns its client secret. Resolving twice for the same order returns the
// same intent.
func (h *PaymentHandler) HandleCreatePaymentIntent(c *fiber.Ctx) error {
	var req CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Order ID is required",
		})
	}

	intent, err := h.service.ResolveIntent(middleware.UserID(c), req.OrderID)
	if err != nil {
		log.Printf("Error resolving payment intent for order %s: %v", req.OrderID, err)
		var notFoundErr *apperrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		var gatewayErr *apperrors.GatewayError
		if errors.As(err, &gatewayErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create payment intent",
				"details": gatewayErr.UserMessage(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment intent",
		})
	}

	return c.JSON(fiber.Map{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

// ConfirmPaymentRequest is the body of POST /confirm-payment. PaymentMethodID
// is a gateway payment-method id; raw card details never reach this server.
type ConfirmPaymentRequest struct {
	OrderID         string `json:"orderId"`
	PaymentMethodID string `json:"paymentMethodId"`
}

// HandleConfirmPayment confirms the order's intent and reports the reconciled
// state. A requires_action response carries the client secret back so the SPA
// can run the gateway's additional-authentication step.
func (h *PaymentHandler) HandleConfirmPayment(c *fiber.Ctx) error {
	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Order ID is required",
		})
	}

	intent, err := h.service.ConfirmPayment(middleware.UserID(c), req.OrderID, req.PaymentMethodID)
	if err != nil {
		log.Printf("Error confirming payment for order %s: %v", req.OrderID, err)
		return respondError(c, err)
	}

	if intent.Status == payments.StatusRequiresAction {
		return c.JSON(fiber.Map{
			"status":       string(intent.Status),
			"clientSecret": intent.ClientSecret,
		})
	}

	return c.JSON(fiber.Map{
		"status":  string(intent.Status),
		"orderId": req.OrderID,
	})
}

// HandlePaymentConfig serves the gateway publishable key and currency for the
// browser SDK.
func (h *PaymentHandler) HandlePaymentConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"publishableKey": h.publishableKey,
		"currency":       h.currency,
	})
}
