package handler

import (
	"github.com/matchpoint/court-booking/internal/repository" // repository holds the data access layer
	"github.com/matchpoint/court-booking/internal/slot"       // slot engine performs grid and booking logic
)

// OwnerHandler bundles the repositories and the slot engine needed for
// venue owners to manage venues, courts and admin bookings.
type OwnerHandler struct {
	VenueRepo   *repository.VenueRepo   // VenueRepo provides venue persistence
	CourtRepo   *repository.CourtRepo   // CourtRepo provides court persistence
	BookingRepo *repository.BookingRepo // BookingRepo provides booking persistence
	Engine      *slot.Engine            // Engine validates hours and writes bookings
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any dependency is nil
func NewOwnerHandler(venueRepo *repository.VenueRepo, courtRepo *repository.CourtRepo, bookingRepo *repository.BookingRepo, engine *slot.Engine) *OwnerHandler {
	if venueRepo == nil || courtRepo == nil || bookingRepo == nil || engine == nil {
		panic("nil dependency passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		VenueRepo:   venueRepo,
		CourtRepo:   courtRepo,
		BookingRepo: bookingRepo,
		Engine:      engine,
	}
}
