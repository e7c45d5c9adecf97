package model

import "time"

// Court represents a row in the `courts` table. A court belongs to exactly
// one venue and inherits that venue's operating hours for slot derivation.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – references venues.id of the owning venue.
//  Name      – court name shown to players (e.g. "Court 2").
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Court struct {
	ID        uint64    // courts.id
	VenueID   uint64    // courts.venue_id
	Name      string    // courts.name
	CreatedAt time.Time // courts.created_at
	UpdatedAt time.Time // courts.updated_at
}
