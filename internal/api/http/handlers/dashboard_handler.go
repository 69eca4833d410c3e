package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/service"
)

// DashboardHandler exposes the admin summary endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService}
}

// Summary handles GET /api/dashboard/summary.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"active_projects":      summary.ActiveProjects,
			"total_cubic_meters":   summary.TotalCubicMeters,
			"recent_reports_count": summary.RecentReportsCount,
			"recent_reports":       summary.RecentReports,
		},
	})
}
