package router

import (
	"github.com/labstack/echo/v4"

	"github.com/matchpoint/court-booking/internal/handler"
	"github.com/matchpoint/court-booking/internal/middleware"
	"github.com/matchpoint/court-booking/internal/model"
)

// RegisterPlayer registers PLAYER-scoped endpoints under /v1. Players book
// slots, rate venues and run the match request lifecycle. All routes
// require a valid JWT and the PLAYER role.
func RegisterPlayer(e *echo.Echo, p *handler.PlayerHandler, m *handler.MatchHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RolePlayer),
	)

	// ---- Bookings ----
	g.POST("/bookings", p.CreateBooking)
	g.GET("/my-bookings", p.MyBookings)
	// DELETE /v1/bookings/:id is shared with owners; see RegisterBookingCancel.

	// ---- Ratings ----
	g.POST("/venues/:id/rating", p.RateVenue)

	// ---- Match requests ----
	g.POST("/match-requests", m.Create)
	g.POST("/match-requests/:id/accept", m.Accept)
	g.DELETE("/match-requests/:id", m.Cancel)
	g.GET("/matches", m.ListConsolidated)
	g.GET("/matches/joinable", m.ListJoinable)
}
