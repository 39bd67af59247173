package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/repository"
)

// respondOK writes the success envelope.
func respondOK(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// respondCreated writes the success envelope with a 201.
func respondCreated(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// respondList writes a collection with its count.
func respondList(c *fiber.Ctx, data any, count int) error {
	return c.JSON(fiber.Map{"success": true, "count": count, "data": data})
}

// respondPage writes a collection with count, filtered total and next/prev
// page descriptors.
func respondPage(c *fiber.Ctx, data any, count, total int, pagination repository.Pagination) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"count":      count,
		"total":      total,
		"pagination": pagination,
		"data":       data,
	})
}
