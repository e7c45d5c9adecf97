// Package slot derives per-hour availability grids from venue operating
// hours and gates booking creation against operating-hour and conflict
// rules. Venue hours are packed HHMM integers (900 = 9:00); every slot is
// exactly one hour. The engine holds no state of its own: each call is a
// pure function over its inputs plus one or two store calls.
package slot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/matchpoint/court-booking/internal/model"
	"github.com/matchpoint/court-booking/internal/queue"
)

// Validation errors surfaced to handlers. Boundary violations carry which
// boundary was broken so the caller can tell the user what to fix.
var (
	// ErrMalformedDate reports a date that is not YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date, want YYYY-MM-DD")
	// ErrMalformedTime reports a starting time that is not a parseable HH:MM.
	ErrMalformedTime = errors.New("malformed starting time, want HH:MM")
	// ErrBeforeOpening reports a booking starting before the venue opens.
	ErrBeforeOpening = errors.New("starting time is before opening time")
	// ErrOverrunsClosing reports a booking whose hour-long occupancy would
	// extend past closing time.
	ErrOverrunsClosing = errors.New("booking would run past closing time")
)

// Slot is one hourly bookable unit of a court on a date. Slots are derived
// fresh on every query from venue hours plus booking rows and are never
// persisted or cached beyond the request.
type Slot struct {
	Date      string  `json:"date"`
	Starts    string  `json:"starts"`
	IsBooked  bool    `json:"is_booked"`
	BookingID *uint64 `json:"booking_id"`
	UserID    *uint64 `json:"user_id"`
}

// HoursStore resolves a court to its owning venue's operating hours.
// Implementations return repository.ErrCourtNotFound when the court does
// not resolve to a venue.
type HoursStore interface {
	VenueHoursByCourt(ctx context.Context, courtID uint64) (opening, closing int, err error)
}

// BookingStore is the persistence collaborator for bookings. Insert must
// fail with repository.ErrSlotTaken on a (court, date, starting time)
// uniqueness violation; the engine's validation never claims exclusivity,
// the storage constraint does.
type BookingStore interface {
	FindByCourtAndDate(ctx context.Context, courtID uint64, date string) ([]*model.Booking, error)
	Insert(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	Delete(ctx context.Context, id uint64) error
}

// Publisher fans out booking-changed notifications. Delivery is advisory:
// a dropped notification is not an error condition for the booking itself.
type Publisher interface {
	PublishBookingChanged(ctx context.Context, ev queue.BookingChangedEvent) error
}

// Engine wires the two stores and the notification publisher. The
// publisher may be nil, in which case notifications are skipped.
type Engine struct {
	hours    HoursStore
	bookings BookingStore
	pub      Publisher
}

// NewEngine constructs an Engine. hours and bookings must be non-nil.
func NewEngine(hours HoursStore, bookings BookingStore, pub Publisher) *Engine {
	if hours == nil || bookings == nil {
		panic("nil store passed to slot.NewEngine")
	}
	return &Engine{hours: hours, bookings: bookings, pub: pub}
}

// ListSlots returns the availability grid for a court on a date: one Slot
// per operating hour in ascending time order. A venue whose closing time
// is not after its opening time yields zero slots.
func (e *Engine) ListSlots(ctx context.Context, courtID uint64, date string) ([]Slot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	opening, closing, err := e.hours.VenueHoursByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	existing, err := e.bookings.FindByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	byStart := make(map[string]*model.Booking, len(existing))
	for _, b := range existing {
		byStart[b.StartingTime] = b
	}

	count := (closing - opening) / 100
	if count < 0 {
		count = 0
	}
	slots := make([]Slot, 0, count)
	for h := 0; h < count; h++ {
		starts := formatPacked(opening + h*100)
		s := Slot{Date: date, Starts: starts}
		if b, ok := byStart[starts]; ok {
			s.IsBooked = true
			id := b.ID
			s.BookingID = &id
			s.UserID = b.UserID
		}
		slots = append(slots, s)
	}
	return slots, nil
}

// CreateBooking validates a booking request against the owning venue's
// operating hours and persists it. startingTime accepts H:MM or HH:MM and
// is normalized to zero-padded form before persisting so grid lookups
// always match. userID is nil for venue-created bookings.
//
// The two range rules: the slot must not start before opening, and its
// hour-long occupancy must not extend past closing (last valid start is
// closing - 100). Conflicts are decided by the store's unique constraint,
// not here: concurrent requests for the same tuple both pass validation
// and the second insert fails with repository.ErrSlotTaken.
func (e *Engine) CreateBooking(ctx context.Context, courtID uint64, startingTime, date string, userID *uint64) (*model.Booking, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	packed, normalized, err := parseTime(startingTime)
	if err != nil {
		return nil, err
	}
	opening, closing, err := e.hours.VenueHoursByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if packed+100 > closing {
		return nil, ErrOverrunsClosing
	}
	if packed < opening {
		return nil, ErrBeforeOpening
	}

	b := &model.Booking{CourtID: courtID, UserID: userID, Date: date, StartingTime: normalized}
	if err := e.bookings.Insert(ctx, b); err != nil {
		return nil, err
	}
	e.notify(queue.BookingChangedEvent{
		BookingID:    b.ID,
		CourtID:      b.CourtID,
		Date:         b.Date,
		StartingTime: b.StartingTime,
		Action:       queue.BookingCreated,
	})
	return b, nil
}

// CancelBooking removes a booking. Returns repository.ErrBookingNotFound
// when the booking does not exist.
func (e *Engine) CancelBooking(ctx context.Context, bookingID uint64) error {
	b, err := e.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := e.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	e.notify(queue.BookingChangedEvent{
		BookingID:    b.ID,
		CourtID:      b.CourtID,
		Date:         b.Date,
		StartingTime: b.StartingTime,
		Action:       queue.BookingCancelled,
	})
	return nil
}

// notify publishes a booking-changed event on a background context so a
// cancelled request context cannot abort the advisory publish. Failures
// are logged and dropped: the booking write is the authoritative outcome.
func (e *Engine) notify(ev queue.BookingChangedEvent) {
	if e.pub == nil {
		return
	}
	if err := e.pub.PublishBookingChanged(context.Background(), ev); err != nil {
		log.Printf("slot: booking-changed publish failed (ignored): %v", err)
	}
}

// validateDate checks the YYYY-MM-DD wire format.
func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrMalformedDate
	}
	return nil
}

// parseTime parses an HH:MM string (hour may be a single digit) into its
// packed HHMM integer plus the zero-padded canonical form.
func parseTime(s string) (packed int, normalized string, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, "", ErrMalformedTime
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, "", ErrMalformedTime
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, "", ErrMalformedTime
	}
	return h*100 + m, fmt.Sprintf("%02d:%02d", h, m), nil
}

// formatPacked renders a packed HHMM integer as zero-padded HH:MM.
func formatPacked(packed int) string {
	return fmt.Sprintf("%02d:%02d", packed/100, packed%100)
}

// ValidHours reports whether a packed opening/closing pair is acceptable
// for a venue: both on exact hour boundaries, within the day, and spanning
// at least one whole hour. Enforced at venue create/update time so the
// grid arithmetic above always divides evenly.
func ValidHours(opening, closing int) bool {
	if opening%100 != 0 || closing%100 != 0 {
		return false
	}
	if opening < 0 || closing > 2400 {
		return false
	}
	return closing-opening >= 100
}
