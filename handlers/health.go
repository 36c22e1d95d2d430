package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tuyensinh/admission-advisor/database"
)

// HandleCheckHealth reports service liveness together with the database connection state
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}
