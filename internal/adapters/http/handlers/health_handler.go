package handlers

import (
	"y4d-cms/internal/config"
	"y4d-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root returns basic service info
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "Y4D CMS API", fiber.Map{
		"service": "y4d-cms",
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck returns the service health status
// @Summary Health check
// @Description Check if the service and database are healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database is not reachable")
	}

	return response.Success(c, "Service is healthy", fiber.Map{
		"status": "ok",
	})
}

// APIInfo returns API version info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return response.Success(c, "Y4D CMS API v1", fiber.Map{
		"version": "v1",
	})
}
