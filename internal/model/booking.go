package model

import "time"

// Booking represents a row in the `bookings` table: one reserved hourly
// slot on a court. The tuple (court_id, date, starting_time) carries a
// UNIQUE KEY in the schema; that constraint, not application code, is what
// ultimately prevents double booking under concurrency.
//
// Fields:
//  ID           – primary key identifier.
//  CourtID      – references courts.id.
//  UserID       – references users.id of the booking player; nil for a
//                 booking entered by the venue owner on behalf of a
//                 walk-in or phone customer.
//  Date         – calendar date of the slot, formatted YYYY-MM-DD.
//  StartingTime – slot start, zero-padded HH:MM, always on the hour.
//  CreatedAt    – timestamp of creation.
type Booking struct {
	ID           uint64    // bookings.id
	CourtID      uint64    // bookings.court_id
	UserID       *uint64   // bookings.user_id (nullable)
	Date         string    // bookings.date
	StartingTime string    // bookings.starting_time
	CreatedAt    time.Time // bookings.created_at
}
