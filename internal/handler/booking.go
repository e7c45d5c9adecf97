package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/matchpoint/court-booking/internal/repository" // repository sentinels
	"github.com/matchpoint/court-booking/internal/slot"       // slot engine performs booking logic
)

// PlayerHandler groups what authenticated players need: booking a slot,
// cancelling their own bookings, listing them and rating venues. JWT and
// role checks have already run in middleware.
type PlayerHandler struct {
	Engine      *slot.Engine            // Engine validates and writes bookings
	BookingRepo *repository.BookingRepo // BookingRepo lists and loads bookings
	VenueRepo   *repository.VenueRepo   // VenueRepo records ratings
}

// NewPlayerHandler constructs a PlayerHandler. All dependencies must be non-nil.
func NewPlayerHandler(engine *slot.Engine, bookingRepo *repository.BookingRepo, venueRepo *repository.VenueRepo) *PlayerHandler {
	if engine == nil || bookingRepo == nil || venueRepo == nil {
		panic("nil dependency passed to NewPlayerHandler")
	}
	return &PlayerHandler{Engine: engine, BookingRepo: bookingRepo, VenueRepo: venueRepo}
}

type createBookingReq struct {
	CourtID      uint64 `json:"court_id"`
	Date         string `json:"date"`          // YYYY-MM-DD
	StartingTime string `json:"starting_time"` // HH:MM, on the hour
}

// CreateBooking handles POST /v1/bookings. Validation can tell the caller
// the slot looks free, but only the insert decides: a concurrent winner
// surfaces here as a 409.
func (h *PlayerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CourtID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "court_id is required"})
	}

	b, err := h.Engine.CreateBooking(c.Request().Context(), req.CourtID, req.StartingTime, req.Date, &userID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// CancelBooking handles DELETE /v1/bookings/:id. Players may only cancel
// bookings they made themselves; owner-entered bookings have no user and
// are never cancellable here.
func (h *PlayerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.UserID == nil || *b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}

	if err := h.Engine.CancelBooking(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// MyBookings handles GET /v1/my-bookings and lists the caller's bookings,
// newest date first.
func (h *PlayerHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// RateVenue handles POST /v1/venues/:id/rating. Stars are folded into the
// venue's running average atomically in the repository.
func (h *PlayerHandler) RateVenue(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req struct {
		Stars int `json:"stars"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Stars < 1 || req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if err := h.VenueRepo.AddRating(ctx, id, req.Stars); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rating failed"})
	}
	v, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reload venue failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rating": v.Rating, "total_rating": v.TotalRating})
}
