package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/buycarr/marketplace-api/internal/handler"    // import the handlers that implement business logic
	"github.com/buycarr/marketplace-api/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that carry no authentication and no
// domain logic: the health check for load balancers and the reachability
// probe used by the mobile clients.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/api/test", handler.Test)
}

// RegisterAuth registers the authentication endpoints.  Registration and
// the two login variants are open; /api/auth/me requires a valid access
// token of either role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/admin/login", a.AdminLogin)

	// /api/auth/me needs a token but no particular role.
	g.GET("/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)
}

// RegisterPublic registers the unauthenticated browse endpoints: the car
// catalogue, the comment listings, the dealership contact details and the
// one-shot admin setup.  The catalogue GETs run behind the response cache
// when one is configured; the cache middleware is a no-op otherwise.
func RegisterPublic(e *echo.Echo, cars *handler.CarHandler, comments *handler.CommentHandler, contact *handler.ContactHandler, setup *handler.SetupHandler, cache echo.MiddlewareFunc) {
	e.GET("/api/cars", cars.List, cache)
	e.GET("/api/cars/:id", cars.Get, cache)
	e.GET("/api/cars/type/:type", cars.ListByType, cache)

	e.GET("/api/cars/:id/comments", comments.ListByCar)
	e.GET("/api/comments", comments.ListAll)

	e.GET("/api/admin/contact", contact.Get)
	e.POST("/api/setup/admin", setup.CreateAdmin)
}
