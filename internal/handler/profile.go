package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buycarr/marketplace-api/internal/model"
	"github.com/buycarr/marketplace-api/internal/repository"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	Users *repository.UserRepo
}

func NewProfileHandler(u *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Users: u}
}

// profilePart extends userPart with the photo and creation time shown on
// the profile screen.
type profilePart struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	ProfilePhoto *string `json:"profile_photo"`
	IsAdmin      bool    `json:"is_admin"`
	CreatedAt    string  `json:"created_at"`
}

func userToProfile(u model.User) profilePart {
	return profilePart{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		ProfilePhoto: u.ProfilePhoto,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userToProfile(u)})
}

// Update handles PUT /api/profile.  All fields are optional; omitted ones
// keep their stored value.  An empty name or email is treated as omitted,
// matching how the mobile client sends untouched form fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		Phone        *string `json:"phone"`
		ProfilePhoto *string `json:"profile_photo"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	upd := repository.ProfileUpdate{Phone: req.Phone, Photo: req.ProfilePhoto}
	if req.Name != nil && *req.Name != "" {
		upd.Name = req.Name
	}
	if req.Email != nil && *req.Email != "" {
		upd.Email = req.Email
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, uid, upd)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already in use"})
		case repository.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated",
		"user":    userToProfile(u),
	})
}
