package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buycarr/marketplace-api/internal/config"
	"github.com/buycarr/marketplace-api/internal/repository"
)

// SetupHandler bootstraps the default administrator account.  The same
// idempotent seed runs at process start, so this endpoint only matters for
// deployments where the database was wiped while the process kept running.
type SetupHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewSetupHandler(cfg config.Config, u *repository.UserRepo) *SetupHandler {
	return &SetupHandler{Cfg: cfg, Users: u}
}

// CreateAdmin handles POST /api/setup/admin.  It fails when any admin
// already exists; it never resets an existing account.
func (h *SetupHandler) CreateAdmin(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	created, err := h.Users.EnsureDefaultAdmin(ctx, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create admin failed"})
	}
	if !created {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin already exists"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "admin created"})
}
