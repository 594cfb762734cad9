package handler

import (
	"quizmaster/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness and cache reachability.
type HealthHandler struct {
	cache domain.Cache // nil when the question cache is disabled
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			cacheStatus = "unavailable"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"cache":  cacheStatus,
	})
}
