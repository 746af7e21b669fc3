package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const healthTimeout = 2 * time.Second

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the service and its store are up.
type HealthHandler struct {
	store Pinger
	log   *zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger, log *zerolog.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log}
}

// RegisterRoutes registers GET /health on router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth pings the store with a short deadline.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("store ping failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"time":   now,
			"store":  "down",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   now,
		"store":  "up",
	})
}
