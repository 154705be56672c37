package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// pageParams extracts page and limit query parameters with bounds applied.
func pageParams(c fiber.Ctx) (page, limit int) {
	page = fiber.Query(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = fiber.Query(c, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
