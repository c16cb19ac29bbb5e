package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"conforma_app_echo/internal/nav"
)

// NavHandler backs the HTMX-enhanced breadcrumb bar. Plain anchors remain
// the non-JS fallback; with HTMX active, clicks post here and the dispatch
// rules decide whether a redirect happens.
type NavHandler struct {
	trail *Trail
}

func NewNavHandler(trail *Trail) *NavHandler {
	return &NavHandler{trail: trail}
}

// ActivateCrumb resolves the trail for the posted pathname and dispatches
// the activation of the entry at the posted index.
func (h *NavHandler) ActivateCrumb(c echo.Context) error {
	pathname := c.FormValue("pathname")
	index, err := strconv.Atoi(c.FormValue("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid crumb index")
	}

	// The posted index is a position in the displayed trail, which may have
	// been collapsed; regenerate it the same way the page did.
	trail := h.trail.FromPath(pathname)

	redirected := false
	navigator := nav.NavigatorFunc(func(path string) error {
		c.Response().Header().Set("HX-Redirect", path)
		redirected = true
		return nil
	})

	nav.Dispatch(trail, index, nil, navigator)

	if !redirected {
		// Disabled or current-page entry: nothing to do.
		return c.NoContent(http.StatusNoContent)
	}
	return c.NoContent(http.StatusOK)
}
