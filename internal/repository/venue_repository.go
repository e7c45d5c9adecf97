// Package repository: venue persistence. A venue holds the operating hours
// that the slot engine derives its hourly grid from, plus a running rating
// aggregate maintained by player submissions.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matchpoint/court-booking/internal/model"
)

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo encapsulates all database queries related to venues. It
// depends on a sql.DB connection configured at startup.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying connection pool so handlers can open
// transactions spanning multiple repositories.
func (r *VenueRepo) DB() *sql.DB { return r.db }

// Create inserts a new venue. On success the venue's ID field is populated
// with the auto-generated value, and a follow-up SELECT fills the default
// timestamp fields so callers receive a fully populated record.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = `INSERT INTO venues (owner_id, name, location, opening_time, closing_time) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, v.OwnerID, v.Name, v.Location, v.OpeningTime, v.ClosingTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	const qSelect = `SELECT rating, total_rating, created_at, updated_at FROM venues WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(&v.Rating, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID fetches a venue by its ID regardless of owner. It returns
// ErrVenueNotFound if no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT id, owner_id, name, location, opening_time, closing_time, rating, total_rating, created_at, updated_at
	           FROM venues WHERE id = ?`
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Location, &v.OpeningTime, &v.ClosingTime,
		&v.Rating, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByIDAndOwner fetches a venue by id but only if it belongs to the
// specified owner. If the venue doesn't exist or is owned by someone else,
// ErrVenueNotFound is returned.
func (r *VenueRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Venue, error) {
	const q = `SELECT id, owner_id, name, location, opening_time, closing_time, rating, total_rating, created_at, updated_at
	           FROM venues WHERE id = ? AND owner_id = ?`
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Location, &v.OpeningTime, &v.ClosingTime,
		&v.Rating, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by id. Used by the public browse API.
func (r *VenueRepo) List(ctx context.Context) ([]*model.Venue, error) {
	const q = `SELECT id, owner_id, name, location, opening_time, closing_time, rating, total_rating, created_at, updated_at
	           FROM venues ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v := new(model.Venue)
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Name, &v.Location, &v.OpeningTime, &v.ClosingTime,
			&v.Rating, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOwner returns all venues for a specific owner ordered by id.
func (r *VenueRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Venue, error) {
	const q = `SELECT id, owner_id, name, location, opening_time, closing_time, rating, total_rating, created_at, updated_at
	           FROM venues WHERE owner_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v := new(model.Venue)
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Name, &v.Location, &v.OpeningTime, &v.ClosingTime,
			&v.Rating, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a venue's name, location and operating hours if it
// belongs to the provided owner. It returns sql.ErrNoRows when no row is
// affected (not found / not owned). Hour validation happens in the
// handler before this call; the repository persists what it is given.
func (r *VenueRepo) Update(ctx context.Context, id, ownerID uint64, name, location string, opening, closing int) error {
	const q = `UPDATE venues SET name = ?, location = ?, opening_time = ?, closing_time = ? WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, location, opening, closing, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddRating folds one star rating (1..5) into the venue's running average
// inside a single UPDATE so concurrent submissions cannot lose counts.
// Returns ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) AddRating(ctx context.Context, id uint64, stars int) error {
	const q = `UPDATE venues
	           SET rating = (rating * total_rating + ?) / (total_rating + 1),
	               total_rating = total_rating + 1
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, stars, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// Delete removes a venue owned by the caller. It refuses with ErrConflict
// when the venue still has courts; courts must be removed first so that
// bookings are never orphaned silently.
func (r *VenueRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	const qCourts = `SELECT COUNT(*) FROM courts WHERE venue_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, qCourts, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM venues WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVenueNotFound
	}
	return nil
}
