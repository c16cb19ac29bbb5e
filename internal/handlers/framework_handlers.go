package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/nav"
	"conforma_app_echo/internal/services"
)

type FrameworkHandler struct {
	db    *gorm.DB
	trail *Trail
}

func NewFrameworkHandler(db *gorm.DB, trail *Trail) *FrameworkHandler {
	return &FrameworkHandler{db: db, trail: trail}
}

// ListFrameworks renders the framework catalog
func (h *FrameworkHandler) ListFrameworks(c echo.Context) error {
	var frameworks []models.Framework
	if err := h.db.Preload("Controls").Find(&frameworks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch frameworks")
	}

	data := newPageData(c, "Frameworks", "frameworks",
		h.trail.FromPath(c.Request().URL.Path), frameworks)
	return c.Render(http.StatusOK, "frameworks.html", data)
}

// ShowFramework renders one framework with its controls grouped by category
func (h *FrameworkHandler) ShowFramework(c echo.Context) error {
	code := c.Param("code")

	var fw models.Framework
	if err := h.db.Preload("Controls").Where("code = ?", code).First(&fw).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Framework not found")
	}

	// Group controls by category, preserving first-seen category order
	grouped := make(map[string][]models.Control)
	var categories []string
	for _, control := range fw.Controls {
		if _, seen := grouped[control.Category]; !seen {
			categories = append(categories, control.Category)
		}
		grouped[control.Category] = append(grouped[control.Category], control)
	}

	// The URL carries the framework code; the trail shows its display name.
	breadcrumbs := h.trail.FromItems(
		nav.Crumb{Label: h.trail.Defaults.HomeLabel, Path: h.trail.Defaults.HomePath},
		nav.Crumb{Label: "Frameworks", Path: "/frameworks"},
		nav.Crumb{Label: fw.Name, Path: "/frameworks/" + fw.Code, Tooltip: fw.Description},
	)

	data := newPageData(c, fw.Name, "frameworks", breadcrumbs, map[string]interface{}{
		"Framework":  fw,
		"Categories": categories,
		"Grouped":    grouped,
	})
	return c.Render(http.StatusOK, "framework_detail.html", data)
}

// ShowControl renders a single control with its guidance and assessment
func (h *FrameworkHandler) ShowControl(c echo.Context) error {
	code := c.Param("code")
	controlID := c.Param("id")

	var fw models.Framework
	if err := h.db.Where("code = ?", code).First(&fw).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Framework not found")
	}

	var control models.Control
	if err := h.db.Where("framework_id = ?", fw.ID).First(&control, controlID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Control not found")
	}

	var assessment models.Assessment
	if err := h.db.Where("control_id = ?", control.ID).First(&assessment).Error; err != nil && err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch assessment")
	}

	breadcrumbs := h.trail.FromItems(
		nav.Crumb{Label: h.trail.Defaults.HomeLabel, Path: h.trail.Defaults.HomePath},
		nav.Crumb{Label: "Frameworks", Path: "/frameworks"},
		nav.Crumb{Label: fw.Name, Path: "/frameworks/" + fw.Code},
		nav.Crumb{Label: control.Code + " " + control.Title, Path: c.Request().URL.Path},
	)

	data := newPageData(c, control.Title, "frameworks", breadcrumbs, map[string]interface{}{
		"Framework":    fw,
		"Control":      control,
		"Assessment":   assessment,
		"GuidanceHTML": services.RenderMarkdown(control.Guidance),
	})
	return c.Render(http.StatusOK, "control_detail.html", data)
}
