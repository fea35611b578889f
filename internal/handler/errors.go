package handler

import (
	"errors"

	"go-stockpilot/internal/importer"
	"go-stockpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the service failure taxonomy onto HTTP status codes:
// not-found 404, conflict 409, validation 400, business rule 422,
// schema error 400, anything else 500.
func respondError(c *fiber.Ctx, err error) error {
	var schemaErr *importer.SchemaError

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrSKUExists),
		errors.Is(err, service.ErrItemExists):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrValidation),
		errors.Is(err, importer.ErrNoHeader):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	case errors.As(err, &schemaErr):
		return c.Status(400).JSON(fiber.Map{"error": schemaErr.Error()})

	case errors.Is(err, service.ErrItemExpired),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidOperation):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
