package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"conforma_app_echo/internal/services"
)

// DashboardHandler serves the executive, compliance and risk dashboards.
// All three render from the same cached aggregate payload.
type DashboardHandler struct {
	metrics *services.MetricsService
	trail   *Trail
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(metrics *services.MetricsService, trail *Trail) *DashboardHandler {
	return &DashboardHandler{metrics: metrics, trail: trail}
}

// Executive renders the executive summary dashboard
func (h *DashboardHandler) Executive(c echo.Context) error {
	m, err := h.metrics.Collect(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute dashboard metrics")
	}

	data := newPageData(c, "Executive Overview", "dashboard",
		h.trail.FromPath(c.Request().URL.Path), m)
	return c.Render(http.StatusOK, "dashboard_executive.html", data)
}

// Compliance renders the compliance posture dashboard
func (h *DashboardHandler) Compliance(c echo.Context) error {
	m, err := h.metrics.Collect(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute dashboard metrics")
	}

	data := newPageData(c, "Compliance Posture", "dashboard",
		h.trail.FromPath(c.Request().URL.Path), m)
	return c.Render(http.StatusOK, "dashboard_compliance.html", data)
}

// MetricsJSON exposes the dashboard aggregates to API clients
func (h *DashboardHandler) MetricsJSON(c echo.Context) error {
	m, err := h.metrics.Collect(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute metrics")
	}
	return c.JSON(http.StatusOK, m)
}

// Risk renders the risk analytics dashboard
func (h *DashboardHandler) Risk(c echo.Context) error {
	m, err := h.metrics.Collect(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute dashboard metrics")
	}

	data := newPageData(c, "Risk Analytics", "dashboard",
		h.trail.FromPath(c.Request().URL.Path), m)
	return c.Render(http.StatusOK, "dashboard_risk.html", data)
}
