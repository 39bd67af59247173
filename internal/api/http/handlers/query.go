package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/repository"
)

// parsePageRequest reads page/limit query params, leaving defaults to the
// repository layer.
func parsePageRequest(c *fiber.Ctx) repository.PageRequest {
	return repository.PageRequest{
		Page:  parseIntQuery(c, "page", repository.DefaultPage),
		Limit: parseIntQuery(c, "limit", repository.DefaultLimit),
	}
}

// parseSelectFields reads the comma-separated select query param.
func parseSelectFields(c *fiber.Ctx) []string {
	raw := c.Query("select")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
