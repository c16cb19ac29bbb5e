package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
)

// RequireAPIKey returns a middleware guarding the REST API with keys
// minted on the settings page. The matching key's LastUsedAt is bumped on
// every authenticated request.
func RequireAPIKey(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("X-Api-Key")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing API key")
			}

			var key models.APIKey
			err := db.Where("token = ? AND revoked = ?", token, false).First(&key).Error
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid API key")
			}

			now := time.Now()
			db.Model(&key).Update("last_used_at", &now)

			c.Set("apiKeyLabel", key.Label)
			return next(c)
		}
	}
}
