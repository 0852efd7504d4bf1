package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-backend/internal/api/dto"
)

// bindJSON decodes and validates a request body.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return dto.Validate(out)
}

// pathID returns a UUID path parameter or a 400.
func pathID(c *fiber.Ctx, name string) (string, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fiber.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return id.String(), nil
}

// dateLayouts are tried in order. Values without an offset are read as UTC.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// pathDate returns a timestamp path parameter or a 400.
func pathDate(c *fiber.Ctx, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Params(name))
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fiber.NewError(http.StatusBadRequest, "invalid "+name+": expected ISO-8601 date or timestamp")
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
