package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matchpoint/court-booking/internal/model"
)

// ErrMatchRequestNotFound is returned when a match request cannot be found.
var ErrMatchRequestNotFound = errors.New("match request not found")

// ErrAlreadyMatched is returned when an operation requires a pending
// request but the request has already transitioned to matched. Matched is
// terminal; there is no path back to pending.
var ErrAlreadyMatched = errors.New("match request already matched")

// MatchRequestRepo encapsulates all database queries related to match
// requests. Listing methods join the users table twice so requests come
// back with creator and partner names already hydrated, which is what the
// consolidator and the UI need.
type MatchRequestRepo struct {
	db *sql.DB
}

// NewMatchRequestRepo constructs a MatchRequestRepo with the given DB handle.
func NewMatchRequestRepo(db *sql.DB) *MatchRequestRepo {
	return &MatchRequestRepo{db: db}
}

const matchRequestColumns = `m.id, m.booking_id, m.match_type, m.status,
	       cu.id, cu.name, pu.id, pu.name, m.created_at`

const matchRequestJoins = `FROM match_requests m
	       JOIN users cu ON cu.id = m.created_by_id
	       LEFT JOIN users pu ON pu.id = m.partner_id`

// Create inserts a new pending match request. On success the request's ID
// and CreatedAt are populated.
func (r *MatchRequestRepo) Create(ctx context.Context, m *model.MatchRequest) error {
	const qInsert = `INSERT INTO match_requests (booking_id, match_type, status, created_by_id, partner_id) VALUES (?, ?, ?, ?, ?)`
	var bookingID, partnerID interface{}
	if m.BookingID != nil {
		bookingID = *m.BookingID
	}
	if m.Partner != nil {
		partnerID = m.Partner.ID
	}
	res, err := r.db.ExecContext(ctx, qInsert, bookingID, m.MatchType, m.Status, m.CreatedBy.ID, partnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const qSelect = `SELECT created_at FROM match_requests WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.CreatedAt)
}

// GetByID fetches a single match request with user names hydrated.
func (r *MatchRequestRepo) GetByID(ctx context.Context, id uint64) (*model.MatchRequest, error) {
	q := `SELECT ` + matchRequestColumns + ` ` + matchRequestJoins + ` WHERE m.id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	m, err := scanMatchRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListByStatus returns all match requests in the given status ordered by
// id ascending. The stable order is a documented precondition of the
// consolidator: team assignment is deterministic only if the input order
// is reproducible across calls.
func (r *MatchRequestRepo) ListByStatus(ctx context.Context, status string) ([]model.MatchRequest, error) {
	q := `SELECT ` + matchRequestColumns + ` ` + matchRequestJoins + ` WHERE m.status = ? ORDER BY m.id ASC`
	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MatchRequest, 0)
	for rows.Next() {
		m, err := scanMatchRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Accept transitions a pending request to matched. For a request without a
// pre-selected partner the accepting player is recorded as the partner.
// Returns ErrMatchRequestNotFound when the request does not exist and
// ErrAlreadyMatched when it is no longer pending: the status filter in the
// UPDATE makes concurrent accepts race-safe (only the first one flips the
// row).
func (r *MatchRequestRepo) Accept(ctx context.Context, id, accepterID uint64) error {
	const q = `UPDATE match_requests
	           SET status = ?, partner_id = COALESCE(partner_id, ?)
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.MatchStatusMatched, accepterID, id, model.MatchStatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing row from a lost accept race.
		const qExists = `SELECT COUNT(*) FROM match_requests WHERE id = ?`
		var cnt int
		if err := r.db.QueryRowContext(ctx, qExists, id).Scan(&cnt); err != nil {
			return err
		}
		if cnt == 0 {
			return ErrMatchRequestNotFound
		}
		return ErrAlreadyMatched
	}
	return nil
}

// DeletePending removes a pending request owned by the given user.
// Returns ErrForbidden when the request belongs to someone else,
// ErrAlreadyMatched when it is no longer pending, and
// ErrMatchRequestNotFound when it does not exist.
func (r *MatchRequestRepo) DeletePending(ctx context.Context, id, userID uint64) error {
	const qInfo = `SELECT created_by_id, status FROM match_requests WHERE id = ?`
	var createdBy uint64
	var status string
	if err := r.db.QueryRowContext(ctx, qInfo, id).Scan(&createdBy, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchRequestNotFound
		}
		return err
	}
	if createdBy != userID {
		return ErrForbidden
	}
	if status != model.MatchStatusPending {
		return ErrAlreadyMatched
	}
	const q = `DELETE FROM match_requests WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, id, model.MatchStatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyMatched
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatchRequest(row rowScanner) (*model.MatchRequest, error) {
	var m model.MatchRequest
	var bookingID sql.NullInt64
	var partnerID sql.NullInt64
	var partnerName sql.NullString
	if err := row.Scan(
		&m.ID, &bookingID, &m.MatchType, &m.Status,
		&m.CreatedBy.ID, &m.CreatedBy.Name, &partnerID, &partnerName, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	if bookingID.Valid {
		bid := uint64(bookingID.Int64)
		m.BookingID = &bid
	}
	if partnerID.Valid {
		m.Partner = &model.Player{ID: uint64(partnerID.Int64), Name: partnerName.String}
	}
	return &m, nil
}
