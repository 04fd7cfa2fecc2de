package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/buycarr/marketplace-api/internal/repository"
)

// FavoriteHandler lets users maintain their favorite listings.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Cars      *repository.CarRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, cars *repository.CarRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f, Cars: cars}
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Favorites.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": items})
}

// Add handles POST /api/favorites.  The storage-level unique key is the
// authority on the one-favorite-per-pair rule, so even when two requests
// race past the existence check only one insert wins.
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		CarID uint64 `json:"car_id"`
	}
	if err := c.Bind(&req); err != nil || req.CarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "car_id is required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Cars.GetByID(ctx, req.CarID); err != nil {
		if err == repository.ErrCarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	fav, err := h.Favorites.Create(ctx, uid, req.CarID)
	if err != nil {
		if err == repository.ErrFavoriteExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "car already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create favorite failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "car added to favorites",
		"favorite_id": fav.ID,
	})
}

// Remove handles DELETE /api/favorites/:id.  Only the owning user can
// remove a favorite; anyone else sees 404.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Favorites.DeleteForUser(ctx, id, uid); err != nil {
		if err == repository.ErrFavoriteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "car removed from favorites"})
}
