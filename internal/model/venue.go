package model

import "time"

// Venue represents a row in the `venues` table. Each venue belongs to a
// single owner and contains one or more courts. Operating hours are stored
// as packed HHMM integers (e.g. 900 = 9:00, 2100 = 21:00) and are required
// to be exact-hour boundaries so that the slot grid arithmetic stays whole.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – references users.id of the venue owner.
//  Name        – human-friendly name of the venue.
//  Location    – free-form address or area description.
//  OpeningTime – packed HHMM opening boundary (inclusive).
//  ClosingTime – packed HHMM closing boundary (exclusive).
//  Rating      – running average of submitted ratings.
//  TotalRating – number of ratings contributing to the average.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Venue struct {
	ID          uint64    // venues.id
	OwnerID     uint64    // venues.owner_id
	Name        string    // venues.name
	Location    string    // venues.location
	OpeningTime int       // venues.opening_time (packed HHMM)
	ClosingTime int       // venues.closing_time (packed HHMM)
	Rating      float64   // venues.rating
	TotalRating uint32    // venues.total_rating
	CreatedAt   time.Time // venues.created_at
	UpdatedAt   time.Time // venues.updated_at
}
