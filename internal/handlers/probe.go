package handlers

import (
	"github.com/gofiber/fiber/v3"

	"linkdeck/internal/db"
)

// ProbeHandler serves the liveness and readiness endpoints used by
// orchestrators and uptime monitors.
type ProbeHandler struct {
	db *db.DB
}

func NewProbeHandler(database *db.DB) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Liveness answers /healthz. It only confirms the process is up and
// serving requests; it deliberately touches no dependencies.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "linkdeck",
	})
}

// Readiness answers /readyz. The service cannot do useful work without
// Postgres, so readiness is a ping against the pool.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	checks := fiber.Map{"database": "ok"}

	if err := h.db.Ping(c.Context()); err != nil {
		checks["database"] = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"checks": checks,
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": checks,
	})
}
