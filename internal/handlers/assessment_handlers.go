package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/nav"
	"conforma_app_echo/internal/services"
)

type AssessmentHandler struct {
	db      *gorm.DB
	metrics *services.MetricsService
	trail   *Trail
}

func NewAssessmentHandler(db *gorm.DB, metrics *services.MetricsService, trail *Trail) *AssessmentHandler {
	return &AssessmentHandler{db: db, metrics: metrics, trail: trail}
}

// ListAssessments renders all assessments, optionally filtered by framework
func (h *AssessmentHandler) ListAssessments(c echo.Context) error {
	query := h.db.Preload("Framework").Preload("Control")
	if code := c.QueryParam("framework"); code != "" {
		var fw models.Framework
		if err := h.db.Where("code = ?", code).First(&fw).Error; err == nil {
			query = query.Where("framework_id = ?", fw.ID)
		}
	}

	var assessments []models.Assessment
	if err := query.Find(&assessments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch assessments")
	}

	data := newPageData(c, "Assessments", "assessments",
		h.trail.FromPath(c.Request().URL.Path), assessments)
	return c.Render(http.StatusOK, "assessments.html", data)
}

// EditAssessmentPage renders the assessment edit form
func (h *AssessmentHandler) EditAssessmentPage(c echo.Context) error {
	id := c.Param("id")

	var assessment models.Assessment
	if err := h.db.Preload("Framework").Preload("Control").First(&assessment, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assessment not found")
	}

	breadcrumbs := h.trail.FromItems(
		nav.Crumb{Label: h.trail.Defaults.HomeLabel, Path: h.trail.Defaults.HomePath},
		nav.Crumb{Label: "Assessments", Path: "/assessments"},
		nav.Crumb{Label: assessment.Control.Code, Path: c.Request().URL.Path},
	)

	data := newPageData(c, "Edit Assessment", "assessments", breadcrumbs, assessment)
	return c.Render(http.StatusOK, "assessment_edit.html", data)
}

// UpdateAssessment handles the edit form submission
func (h *AssessmentHandler) UpdateAssessment(c echo.Context) error {
	id := c.Param("id")

	var assessment models.Assessment
	if err := h.db.First(&assessment, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assessment not found")
	}

	status := models.AssessmentStatus(c.FormValue("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid assessment status")
	}
	severity := models.RiskSeverity(c.FormValue("severity"))
	if !severity.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid risk severity")
	}

	assessment.Status = status
	assessment.Severity = severity
	assessment.OwnerEmail = c.FormValue("owner_email")
	assessment.Notes = c.FormValue("notes")

	if rule := c.FormValue("review_rule"); rule != "" {
		if err := models.ValidateReviewRule(rule); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid review cadence rule")
		}
		assessment.ReviewRule = &rule
	} else {
		assessment.ReviewRule = nil
	}

	if c.FormValue("mark_reviewed") == "on" {
		now := time.Now()
		assessment.LastReviewed = &now
	}

	if err := h.db.Save(&assessment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update assessment")
	}

	// Posture changed, dashboards must recompute.
	h.metrics.InvalidateDashboards(c.Request().Context())

	return c.Redirect(http.StatusSeeOther, "/assessments")
}

// ShowShared renders the read-only share view addressed by public token.
// No session required; the token is the capability.
func (h *AssessmentHandler) ShowShared(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid share token")
	}

	var assessment models.Assessment
	if err := h.db.Preload("Framework").Preload("Control").
		Where("public_token = ?", token).First(&assessment).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Shared assessment not found")
	}

	data := map[string]interface{}{
		"Title":        "Shared Assessment",
		"Assessment":   assessment,
		"GuidanceHTML": services.RenderMarkdown(assessment.Control.Guidance),
	}
	return c.Render(http.StatusOK, "assessment_shared.html", data)
}
