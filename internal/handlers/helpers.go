package handlers

import (
	"github.com/labstack/echo/v4"

	"conforma_app_echo/internal/nav"
)

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

// newPageData assembles the fields every template expects.
func newPageData(c echo.Context, title, activeNav string, breadcrumbs []nav.Crumb, data interface{}) PageData {
	return PageData{
		Title:       title,
		ActiveNav:   activeNav,
		Breadcrumbs: breadcrumbs,
		CurrentPath: c.Request().URL.Path,
		UserEmail:   getStringFromContext(c, "userEmail"),
		UserUID:     getStringFromContext(c, "userUID"),
		Data:        data,
	}
}
