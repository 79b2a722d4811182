package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/summary", h.HandleGetSummary)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Patch("/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
}

// HandleGetCart returns the caller's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleGetSummary returns the priced view of the selected lines.
func (h *CartHandler) HandleGetSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(middleware.UserID(c))
	if err != nil {
		log.Printf("Error computing cart summary: %v", err)
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleAddItem puts a product in the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var item models.CartItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.service.AddItem(middleware.UserID(c), &item); err != nil {
		log.Printf("Error adding cart item: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem changes a line's quantity or checkout selection.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id := c.Params("id")
	var updateData struct {
		Quantity *int  `json:"quantity"`
		Selected *bool `json:"selected"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.Quantity != nil {
		if err := h.service.UpdateQuantity(id, *updateData.Quantity); err != nil {
			log.Printf("Error updating cart item %s: %v", id, err)
			return respondError(c, err)
		}
	}
	if updateData.Selected != nil {
		if err := h.service.SetSelected(id, *updateData.Selected); err != nil {
			log.Printf("Error selecting cart item %s: %v", id, err)
			return respondError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Cart item updated",
	})
}

// HandleRemoveItem deletes a cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.RemoveItem(id); err != nil {
		log.Printf("Error removing cart item %s: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart item removed",
	})
}
