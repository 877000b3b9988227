package handlers

import (
	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the admin overview endpoint
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin returns the admin dashboard numbers
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	adminID := middleware.UserID(c)

	data, err := h.dashboardService.GetAdminDashboard(c.Context(), adminID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved", data)
}
