package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing

	"github.com/matchpoint/court-booking/internal/handler"    // handlers implement the endpoint logic
	"github.com/matchpoint/court-booking/internal/middleware" // JWT, role, cache and rate-limit middleware
	"github.com/matchpoint/court-booking/internal/model"      // role constants
)

// RegisterRoutes registers routes that require no authentication at all.
// Currently it exposes only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me and /v1/auth/logout require a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh) // rotates the refresh token

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout", a.Logout) // revokes every session of the caller
}

// RegisterPublic registers the unauthenticated browse endpoints. The
// caller passes the response cache and rate limiter as extra middleware;
// both are no-ops when redis is unavailable.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1", extra...)
	g.GET("/venues", p.ListVenues)
	g.GET("/venues/:id", p.GetVenue)
	g.GET("/venues/:id/courts", p.ListVenueCourts)
	g.GET("/courts/:id/slots", p.ListSlots)
}

// RegisterBookingCancel wires DELETE /v1/bookings/:id for both roles on a
// single route: players cancel their own bookings, owners cancel any
// booking on courts they own. Dispatch happens on the JWT role claim.
func RegisterBookingCancel(e *echo.Echo, p *handler.PlayerHandler, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RolePlayer, model.RoleOwner),
	)
	g.DELETE("/bookings/:id", func(c echo.Context) error {
		if role, _ := c.Get("role").(string); role == model.RoleOwner {
			return o.DeleteBooking(c)
		}
		return p.CancelBooking(c)
	})
}
