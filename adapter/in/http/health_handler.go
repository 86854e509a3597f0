package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Register mounts the health routes.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.Live)
	router.Get("/health/ready", h.Ready)
}

// Live always reports the process as up.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports readiness once the database answers.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  "database unreachable",
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
