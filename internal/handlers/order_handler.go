package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"petshop/internal/middleware"
	"petshop/internal/services"
)

// OrderHandler handles HTTP requests for checkout and order history.
type OrderHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkoutService *services.CheckoutService, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleCheckout places an order from the caller's selected cart lines.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	order, err := h.checkoutService.PlaceOrder(middleware.UserID(c), req)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves the caller's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetUserOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order owned by the caller.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrder(middleware.UserID(c), orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus moves an order through the fulfillment workflow.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status is required",
		})
	}

	if err := h.orderService.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		log.Printf("Error updating order %s status: %v", orderID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"status":  updateData.Status,
	})
}
