// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried on a BookingChangedEvent.
const (
	BookingCreated   = "created"
	BookingCancelled = "cancelled"
)

// BookingChangedEvent is published whenever a booking is created or
// cancelled. It is advisory only (connected clients use it to refresh
// their slot views), so there is no delivery guarantee and no payload
// contract beyond "something changed on this court". EventID lets
// consumers dedupe broker redeliveries.
type BookingChangedEvent struct {
	EventID      string `json:"event_id"`
	BookingID    uint64 `json:"booking_id"`
	CourtID      uint64 `json:"court_id"`
	Date         string `json:"date"`
	StartingTime string `json:"starting_time"`
	Action       string `json:"action"`
	OccurredAt   string `json:"occurred_at"`
}
