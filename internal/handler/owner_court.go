package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // input trimming
	"time"     // today's date for the future-bookings guard

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/matchpoint/court-booking/internal/model"      // court and booking models
	"github.com/matchpoint/court-booking/internal/repository" // repository sentinels
	"github.com/matchpoint/court-booking/internal/slot"       // slot engine sentinels
)

type courtReq struct {
	VenueID uint64 `json:"venue_id"`
	Name    string `json:"name"`
}

type bookingResp struct {
	ID           uint64  `json:"id"`
	CourtID      uint64  `json:"court_id"`
	UserID       *uint64 `json:"user_id"` // null for owner-entered bookings
	Date         string  `json:"date"`
	StartingTime string  `json:"starting_time"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:           b.ID,
		CourtID:      b.CourtID,
		UserID:       b.UserID,
		Date:         b.Date,
		StartingTime: b.StartingTime,
	}
}

// CreateCourt handles POST /v1/courts. The venue must belong to the caller.
func (h *OwnerHandler) CreateCourt(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.VenueID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id and name are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.VenueRepo.GetByIDAndOwner(ctx, req.VenueID, ownerID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	court := &model.Court{VenueID: req.VenueID, Name: req.Name}
	if err := h.CourtRepo.Create(ctx, court); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create court failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       court.ID,
		"venue_id": court.VenueID,
		"name":     court.Name,
	})
}

// DeleteCourt handles DELETE /v1/courts/:id. Courts with bookings today or
// later cannot be removed.
func (h *OwnerHandler) DeleteCourt(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	today := time.Now().UTC().Format("2006-01-02")
	err = h.CourtRepo.Delete(c.Request().Context(), id, ownerID, today)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrCourtNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your court"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "court has upcoming bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete court failed"})
	}
}

// CreateAdminBooking handles POST /v1/courts/:id/bookings. Owners book on
// behalf of walk-in or phone customers; the stored booking carries no user.
func (h *OwnerHandler) CreateAdminBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courtID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	var req struct {
		Date         string `json:"date"`
		StartingTime string `json:"starting_time"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	courtOwner, err := h.CourtRepo.OwnerOfCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if courtOwner != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your court"})
	}

	b, err := h.Engine.CreateBooking(ctx, courtID, req.StartingTime, req.Date, nil)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// DeleteBooking handles DELETE /v1/bookings/:id for owners: any booking on
// a court in one of the caller's venues may be cancelled.
func (h *OwnerHandler) DeleteBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
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
	courtOwner, err := h.CourtRepo.OwnerOfCourt(ctx, b.CourtID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if courtOwner != ownerID {
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

// ListVenueBookings handles GET /v1/venues/:id/bookings?date=YYYY-MM-DD and
// returns every booking across the venue's courts for one day.
func (h *OwnerHandler) ListVenueBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	if _, err := h.VenueRepo.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	bookings, err := h.BookingRepo.ListByVenueAndDate(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "bookings": out})
}

// writeBookingError maps slot engine and repository errors from a booking
// attempt onto HTTP responses. Boundary violations are user-correctable
// input, so they come back as 400 with a message naming the rule; a lost
// insert race is a 409.
func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, slot.ErrMalformedDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	case errors.Is(err, slot.ErrMalformedTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting_time must be HH:MM"})
	case errors.Is(err, slot.ErrBeforeOpening):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting time is before the venue opens"})
	case errors.Is(err, slot.ErrOverrunsClosing):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot would run past closing time"})
	case errors.Is(err, repository.ErrCourtNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	case errors.Is(err, repository.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot already booked"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
}
