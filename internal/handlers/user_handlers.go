package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/nav"
)

type UserHandler struct {
	db    *gorm.DB
	trail *Trail
}

func NewUserHandler(db *gorm.DB, trail *Trail) *UserHandler {
	return &UserHandler{db: db, trail: trail}
}

// ListUsers renders the list of users
func (h *UserHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.Preload("NotifPreference").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	data := newPageData(c, "User Management", "users",
		h.trail.FromPath(c.Request().URL.Path), users)
	return c.Render(http.StatusOK, "users.html", data)
}

// CreateUserPage renders the create user form
func (h *UserHandler) CreateUserPage(c echo.Context) error {
	data := newPageData(c, "Create New User", "users",
		h.trail.FromPath(c.Request().URL.Path), nil)
	return c.Render(http.StatusOK, "user_form.html", data)
}

// StoreUser handles the creation of a new user
func (h *UserHandler) StoreUser(c echo.Context) error {
	user := models.User{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		UserType: models.UserType(c.FormValue("user_type")),
	}

	if user.UserType == "" {
		user.UserType = models.UserTypeMember
	}

	if err := h.db.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return c.Redirect(http.StatusSeeOther, "/users")
}

// EditUserPage renders the edit user form
func (h *UserHandler) EditUserPage(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	breadcrumbs := h.trail.FromItems(
		nav.Crumb{Label: h.trail.Defaults.HomeLabel, Path: h.trail.Defaults.HomePath},
		nav.Crumb{Label: "Users", Path: "/users"},
		nav.Crumb{Label: user.Name, Path: c.Request().URL.Path},
	)

	data := newPageData(c, "Edit User", "users", breadcrumbs, user)
	return c.Render(http.StatusOK, "user_form.html", data)
}

// UpdateUser handles updating an existing user
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	user.Name = c.FormValue("name")
	user.Email = c.FormValue("email")
	user.UserType = models.UserType(c.FormValue("user_type"))

	if err := h.db.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}

	return c.Redirect(http.StatusSeeOther, "/users")
}

// DeleteUser handles deleting a user
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")

	if err := h.db.Delete(&models.User{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}
