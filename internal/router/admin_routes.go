package router // router defines how HTTP routes are registered for the API

import (
	"github.com/buycarr/marketplace-api/internal/handler"    // admin handlers
	"github.com/buycarr/marketplace-api/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /api.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, cars *handler.CarHandler, reservations *handler.ReservationHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Listings ----
	// NOTE: the catalogue GETs are registered on the public router; only
	// the mutating verbs live here.
	g.POST("/cars", cars.Create)
	g.PUT("/cars/:id", cars.Update)
	g.DELETE("/cars/:id", cars.Delete)

	// ---- Reservations ----
	g.GET("/admin/reservations", reservations.ListAll)
	g.PUT("/admin/reservations/:id/confirm", reservations.Confirm)
	g.PUT("/admin/reservations/:id/cancel", reservations.Cancel)
}
