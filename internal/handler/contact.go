package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buycarr/marketplace-api/internal/repository"
)

// ContactHandler exposes the dealership contact details shown on the
// public site.  The details come from the first administrator account.
type ContactHandler struct {
	Users *repository.UserRepo
}

func NewContactHandler(u *repository.UserRepo) *ContactHandler {
	return &ContactHandler{Users: u}
}

// Get handles GET /api/admin/contact (public).
func (h *ContactHandler) Get(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	admin, err := h.Users.FirstAdmin(ctx)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	phone, name, email := admin.Phone, admin.Name, admin.Email
	if phone == "" {
		phone = repository.DefaultAdminPhone
	}
	if name == "" {
		name = repository.DefaultAdminName
	}
	if email == "" {
		email = repository.DefaultAdminEmail
	}
	return c.JSON(http.StatusOK, echo.Map{
		"phone": phone,
		"name":  name,
		"email": email,
	})
}
