package router

import (
	"github.com/buycarr/marketplace-api/internal/handler"
	"github.com/buycarr/marketplace-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterUser registers the endpoints available to any authenticated
// user: profile, favorites, reservations and comment creation.  All routes
// require a valid JWT; both roles are accepted since admins can use the
// customer features too.
func RegisterUser(e *echo.Echo, profile *handler.ProfileHandler, favorites *handler.FavoriteHandler, reservations *handler.ReservationHandler, comments *handler.CommentHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)

	g.GET("/profile", profile.Get)
	g.PUT("/profile", profile.Update)

	g.GET("/favorites", favorites.List)
	g.POST("/favorites", favorites.Add)
	g.DELETE("/favorites/:id", favorites.Remove)

	g.GET("/reservations", reservations.List)
	g.POST("/reservations", reservations.Create)

	g.POST("/cars/:id/comments", comments.CreateForCar)
	g.POST("/comments", comments.CreateGeneral)
}
