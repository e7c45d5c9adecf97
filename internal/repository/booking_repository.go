package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/matchpoint/court-booking/internal/model"
)

// ErrBookingNotFound is returned when a booking cannot be found in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// BookingRepo encapsulates all database queries related to bookings. The
// bookings table carries UNIQUE KEY (court_id, date, starting_time); the
// insert path maps that violation to ErrSlotTaken so callers never see raw
// driver errors.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the provided DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Insert persists a new booking row. On success the booking's ID and
// CreatedAt fields are populated. When the (court_id, date, starting_time)
// tuple already exists, ErrSlotTaken is returned; this is the only place
// the double-booking race is decided.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	const qInsert = `INSERT INTO bookings (court_id, user_id, date, starting_time) VALUES (?, ?, ?, ?)`
	var userID interface{}
	if b.UserID != nil {
		userID = *b.UserID
	}
	res, err := r.db.ExecContext(ctx, qInsert, b.CourtID, userID, b.Date, b.StartingTime)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return ErrSlotTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const qSelect = `SELECT created_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, b.ID).Scan(&b.CreatedAt)
}

// FindByCourtAndDate returns all bookings for a court on a calendar date,
// ordered by starting time. The slot engine turns this list into the
// per-hour availability grid.
func (r *BookingRepo) FindByCourtAndDate(ctx context.Context, courtID uint64, date string) ([]*model.Booking, error) {
	const q = `SELECT id, court_id, user_id, DATE_FORMAT(date, '%Y-%m-%d'), starting_time, created_at
	           FROM bookings WHERE court_id = ? AND date = ? ORDER BY starting_time`
	rows, err := r.db.QueryContext(ctx, q, courtID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// GetByID fetches a single booking. Returns ErrBookingNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, court_id, user_id, DATE_FORMAT(date, '%Y-%m-%d'), starting_time, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	var userID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.CourtID, &userID, &b.Date, &b.StartingTime, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	return &b, nil
}

// Delete removes a booking row. Returns ErrBookingNotFound when no row was
// deleted. Time-slot changes are modeled as cancel + recreate, so there is
// no update path.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM bookings WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListByUser returns all bookings made by a player, newest date first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	const q = `SELECT id, court_id, user_id, DATE_FORMAT(date, '%Y-%m-%d'), starting_time, created_at
	           FROM bookings WHERE user_id = ? ORDER BY date DESC, starting_time`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListByVenueAndDate returns all bookings across a venue's courts for a
// date, for the owner dashboard.
func (r *BookingRepo) ListByVenueAndDate(ctx context.Context, venueID uint64, date string) ([]*model.Booking, error) {
	const q = `SELECT b.id, b.court_id, b.user_id, DATE_FORMAT(b.date, '%Y-%m-%d'), b.starting_time, b.created_at
	           FROM bookings b
	           JOIN courts c ON c.id = b.court_id
	           WHERE c.venue_id = ? AND b.date = ?
	           ORDER BY b.court_id, b.starting_time`
	rows, err := r.db.QueryContext(ctx, q, venueID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// scanBookings drains a result set whose columns match the booking SELECT
// shape used throughout this file.
func scanBookings(rows *sql.Rows) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0)
	for rows.Next() {
		b := new(model.Booking)
		var userID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.CourtID, &userID, &b.Date, &b.StartingTime, &b.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			uid := uint64(userID.Int64)
			b.UserID = &uid
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
