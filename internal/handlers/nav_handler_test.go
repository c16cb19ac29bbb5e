package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conforma_app_echo/internal/nav"
)

func activateCrumb(t *testing.T, h *NavHandler, pathname string, index string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("pathname", pathname)
	form.Set("index", index)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/nav/crumb", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	err := h.ActivateCrumb(e.NewContext(req, rec))
	require.NoError(t, err)
	return rec
}

func TestActivateCrumbRedirectsToEntryPath(t *testing.T) {
	cfg := nav.Config{HomeLabel: "Home", HomePath: "/dashboard", ShowCurrentPage: true}
	h := NewNavHandler(NewTrail(cfg))

	rec := activateCrumb(t, h, "/frameworks/iso-27001/controls", "1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/frameworks", rec.Header().Get("HX-Redirect"))
}

func TestActivateCrumbCollapsedTrailIndex(t *testing.T) {
	cfg := nav.Config{HomeLabel: "Home", HomePath: "/dashboard", ShowCurrentPage: true}
	h := NewNavHandler(NewTrail(cfg))

	// Seven segments plus home collapse to six displayed entries:
	// [Home, …, /a/b/c/d, /a/b/c/d/e, /a/b/c/d/e/f, /a/b/c/d/e/f/g].
	// Displayed index 2 must resolve against that list, not the full trail.
	rec := activateCrumb(t, h, "/a/b/c/d/e/f/g", "2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/a/b/c/d", rec.Header().Get("HX-Redirect"))
}

func TestActivateCrumbEllipsisIsNoop(t *testing.T) {
	cfg := nav.Config{HomeLabel: "Home", HomePath: "/dashboard", ShowCurrentPage: true}
	h := NewNavHandler(NewTrail(cfg))

	rec := activateCrumb(t, h, "/a/b/c/d/e/f/g", "1")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Redirect"))
}

func TestActivateCrumbCurrentPageIsNoop(t *testing.T) {
	cfg := nav.Config{HomeLabel: "Home", HomePath: "/dashboard", ShowCurrentPage: true}
	h := NewNavHandler(NewTrail(cfg))

	rec := activateCrumb(t, h, "/frameworks/iso-27001", "2")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Redirect"))
}
