package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/matchpoint/court-booking/internal/handler"    // owner handlers
	"github.com/matchpoint/court-booking/internal/middleware" // JWT + role middlewares
	"github.com/matchpoint/court-booking/internal/model"      // role constants
)

// RegisterOwner registers OWNER-scoped endpoints under /v1.
// All routes require a valid JWT and the OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)

	// ---- Venues ----
	g.POST("/venues", o.CreateVenue)
	g.GET("/my-venues", o.ListMyVenues)
	g.PUT("/venues/:id", o.UpdateVenue)
	g.DELETE("/venues/:id", o.DeleteVenue)
	// NOTE: listing and detail of venues is served by the public browse API
	// (GET /v1/venues, GET /v1/venues/:id) to avoid route conflicts.

	// ---- Courts ----
	g.POST("/courts", o.CreateCourt)
	g.DELETE("/courts/:id", o.DeleteCourt)

	// ---- Bookings ----
	g.POST("/courts/:id/bookings", o.CreateAdminBooking) // walk-in / phone bookings, no user attached
	g.GET("/venues/:id/bookings", o.ListVenueBookings)   // day overview across the venue's courts
	// DELETE /v1/bookings/:id is shared with players; see RegisterBookingCancel.
}
