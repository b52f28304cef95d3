package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth handles GET /ping
func HandleCheckHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
