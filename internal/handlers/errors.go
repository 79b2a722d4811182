package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petshop/internal/apperrors"
)

// respondError maps the application error taxonomy onto HTTP responses.
// Validation failures and missing resources map to 400/404; gateway failures
// relay their message only when it is known safe; everything else is a
// generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFoundErr.Error(),
		})
	}

	var gatewayErr *apperrors.GatewayError
	if errors.As(err, &gatewayErr) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": gatewayErr.UserMessage(),
			"code":  gatewayErr.Code,
		})
	}

	var persistenceErr *apperrors.PersistenceError
	if errors.As(err, &persistenceErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong, please try again",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal server error",
		"details": err.Error(),
	})
}
