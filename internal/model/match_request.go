package model

import "time"

// Match types accepted on a MatchRequest.
const (
	MatchTypeSingle = "single"
	MatchTypeDouble = "double"
)

// MatchRequest statuses. A pending request can be accepted (-> matched) or
// cancelled (deleted). Matched is terminal.
const (
	MatchStatusPending = "pending"
	MatchStatusMatched = "matched"
)

// Player is the minimal user projection carried on match requests so that
// consolidated views can be rendered without further lookups.
type Player struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// MatchRequest represents a row in the `match_requests` table: a player's
// expressed intent to play a singles or doubles match, optionally anchored
// to a booking. A doubles request created through the API always carries a
// booking ID so that all four players land on the same committed slot.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – references bookings.id; nil means "no booking yet, match
//              with someone who has one".
//  MatchType – MatchTypeSingle or MatchTypeDouble.
//  Status    – MatchStatusPending or MatchStatusMatched.
//  CreatedBy – the player who created the request.
//  Partner   – pre-selected teammate for doubles (nullable).
//  CreatedAt – timestamp of creation.
type MatchRequest struct {
	ID        uint64    `json:"id"`         // match_requests.id
	BookingID *uint64   `json:"booking_id"` // match_requests.booking_id (nullable)
	MatchType string    `json:"match_type"` // match_requests.match_type
	Status    string    `json:"status"`     // match_requests.status
	CreatedBy Player    `json:"created_by"` // joined from users
	Partner   *Player   `json:"partner"`    // joined from users (nullable)
	CreatedAt time.Time `json:"created_at"` // match_requests.created_at
}
