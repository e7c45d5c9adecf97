package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matchpoint/court-booking/internal/model"
)

// ErrCourtNotFound is returned when a court cannot be found in the DB.
var ErrCourtNotFound = errors.New("court not found")

// CourtRepo encapsulates all database queries related to courts.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo constructs a CourtRepo with the provided DB handle.
func NewCourtRepo(db *sql.DB) *CourtRepo {
	return &CourtRepo{db: db}
}

// Create inserts a new court under a venue. On success the court's ID and
// timestamp fields are populated.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	const qInsert = `INSERT INTO courts (venue_id, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, c.VenueID, c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM courts WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a court by its ID. Returns ErrCourtNotFound when absent.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
	const q = `SELECT id, venue_id, name, created_at, updated_at FROM courts WHERE id = ?`
	var c model.Court
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.VenueID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByVenue returns all courts of a venue ordered by id.
func (r *CourtRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Court, error) {
	const q = `SELECT id, venue_id, name, created_at, updated_at FROM courts WHERE venue_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Court
	for rows.Next() {
		c := new(model.Court)
		if err := rows.Scan(&c.ID, &c.VenueID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// VenueHoursByCourt resolves the owning venue's operating hours for a
// court in a single join. This is the lookup the slot engine performs on
// every listSlots/createBooking call. Returns ErrCourtNotFound when the
// court does not resolve to a venue.
func (r *CourtRepo) VenueHoursByCourt(ctx context.Context, courtID uint64) (opening, closing int, err error) {
	const q = `SELECT v.opening_time, v.closing_time
	           FROM courts c
	           JOIN venues v ON v.id = c.venue_id
	           WHERE c.id = ?`
	if err = r.db.QueryRowContext(ctx, q, courtID).Scan(&opening, &closing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrCourtNotFound
		}
		return 0, 0, err
	}
	return opening, closing, nil
}

// OwnerOfCourt returns the user ID owning the venue a court belongs to.
// Used by owner-scoped handlers to enforce ownership before mutating.
func (r *CourtRepo) OwnerOfCourt(ctx context.Context, courtID uint64) (uint64, error) {
	const q = `SELECT v.owner_id
	           FROM courts c
	           JOIN venues v ON v.id = c.venue_id
	           WHERE c.id = ?`
	var ownerID uint64
	if err := r.db.QueryRowContext(ctx, q, courtID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCourtNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

// Delete removes a court if its venue belongs to the given owner. It
// refuses with ErrConflict when the court still has bookings on or after
// the given date (today, in practice) so future reservations are not
// silently invalidated.
func (r *CourtRepo) Delete(ctx context.Context, courtID, ownerID uint64, fromDate string) error {
	ownerOfCourt, err := r.OwnerOfCourt(ctx, courtID)
	if err != nil {
		return err
	}
	if ownerOfCourt != ownerID {
		return ErrForbidden
	}
	const qBookings = `SELECT COUNT(*) FROM bookings WHERE court_id = ? AND date >= ?`
	var n int
	if err := r.db.QueryRowContext(ctx, qBookings, courtID, fromDate).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM courts WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, courtID)
	return err
}
