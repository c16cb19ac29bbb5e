package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/services"
)

type SettingsHandler struct {
	db    *gorm.DB
	trail *Trail
}

func NewSettingsHandler(db *gorm.DB, trail *Trail) *SettingsHandler {
	return &SettingsHandler{db: db, trail: trail}
}

// ListAPIKeys renders the API key management page
func (h *SettingsHandler) ListAPIKeys(c echo.Context) error {
	var keys []models.APIKey
	if err := h.db.Order("created_at desc").Find(&keys).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch API keys")
	}

	data := newPageData(c, "API Keys", "settings",
		h.trail.FromPath(c.Request().URL.Path), map[string]interface{}{
			"Keys": keys,
			// Set by CreateAPIKey via flash query param, shown exactly once
			"NewToken": c.QueryParam("token"),
		})
	return c.Render(http.StatusOK, "settings_api_keys.html", data)
}

// CreateAPIKey mints a new key and redirects back with the one-time token
func (h *SettingsHandler) CreateAPIKey(c echo.Context) error {
	label := c.FormValue("label")
	if label == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Key label is required")
	}

	key := models.APIKey{
		Label:     label,
		Token:     uuid.New().String(),
		CreatedBy: getStringFromContext(c, "userEmail"),
	}
	if err := h.db.Create(&key).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create API key")
	}

	return c.Redirect(http.StatusSeeOther, "/settings/api-keys?token="+key.Token)
}

// RevokeAPIKey disables a key without deleting its audit trail
func (h *SettingsHandler) RevokeAPIKey(c echo.Context) error {
	id := c.Param("id")

	var key models.APIKey
	if err := h.db.First(&key, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "API key not found")
	}

	key.Revoked = true
	if err := h.db.Save(&key).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke API key")
	}

	return c.Redirect(http.StatusSeeOther, "/settings/api-keys")
}

// ListIntegrations renders the integrations page
func (h *SettingsHandler) ListIntegrations(c echo.Context) error {
	var integrations []models.Integration
	if err := h.db.Find(&integrations).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch integrations")
	}

	data := newPageData(c, "Integrations", "settings",
		h.trail.FromPath(c.Request().URL.Path), integrations)
	return c.Render(http.StatusOK, "settings_integrations.html", data)
}

// CreateIntegration stores a new webhook integration
func (h *SettingsHandler) CreateIntegration(c echo.Context) error {
	endpoint := services.NormalizeEndpoint(c.FormValue("endpoint"))
	if endpoint == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Endpoint is required")
	}

	integration := models.Integration{
		Name:     c.FormValue("name"),
		Kind:     models.IntegrationKindWebhook,
		Endpoint: endpoint,
		Secret:   c.FormValue("secret"),
		Enabled:  c.FormValue("enabled") == "on",
	}
	if err := h.db.Create(&integration).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create integration")
	}

	return c.Redirect(http.StatusSeeOther, "/settings/integrations")
}

// ToggleIntegration flips the enabled flag
func (h *SettingsHandler) ToggleIntegration(c echo.Context) error {
	id := c.Param("id")

	var integration models.Integration
	if err := h.db.First(&integration, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Integration not found")
	}

	integration.Enabled = !integration.Enabled
	if err := h.db.Save(&integration).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update integration")
	}

	return c.Redirect(http.StatusSeeOther, "/settings/integrations")
}

// TestIntegration fires a ping event at the integration endpoint
func (h *SettingsHandler) TestIntegration(c echo.Context) error {
	id := c.Param("id")

	var integration models.Integration
	if err := h.db.First(&integration, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Integration not found")
	}

	if err := services.NewWebhookService(integration).SendTest(integration.Name); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"status": "failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "delivered"})
}

// GetNotifPreference returns the preference modal content for HTMX
func (h *SettingsHandler) GetNotifPreference(c echo.Context) error {
	userIDStr := c.Param("id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid user ID")
	}

	var pref models.NotifPreference
	err = h.db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Default values
			pref = models.NotifPreference{
				UserID:  uint(userID),
				Channel: models.NotificationChannelEmail,
			}
		} else {
			return c.String(http.StatusInternalServerError, "Error fetching preference")
		}
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return c.String(http.StatusNotFound, "User not found")
	}

	var integrations []models.Integration
	h.db.Where("enabled = ?", true).Find(&integrations)

	return c.Render(http.StatusOK, "notif_preference.html", map[string]interface{}{
		"User":         user,
		"Preference":   pref,
		"Integrations": integrations,
	})
}

// UpdateNotifPreference handles the preference form submission
func (h *SettingsHandler) UpdateNotifPreference(c echo.Context) error {
	userIDStr := c.Param("id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid user ID")
	}

	channel := c.FormValue("channel") // "email", "webhook" or "none"

	var integrationID *uint
	if raw := c.FormValue("integration_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(parsed)
			integrationID = &v
		}
	}

	// Upsert preference
	var pref models.NotifPreference
	err = h.db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return c.String(http.StatusInternalServerError, "Error fetching preference")
	}

	pref.UserID = uint(userID)
	pref.Channel = models.NotificationChannel(channel)
	pref.IntegrationID = integrationID

	if err := h.db.Save(&pref).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Failed to save preference")
	}

	return c.NoContent(http.StatusNoContent)
}
