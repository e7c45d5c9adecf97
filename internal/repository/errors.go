// Package repository contains the data access layer, separated from HTTP
// handlers. This file defines error values reused across multiple
// repositories. Sentinel errors allow handlers to distinguish failure
// scenarios: ErrForbidden means the caller does not own the resource,
// ErrConflict means dependent records block the operation (e.g. deleting a
// court that still has future bookings), and ErrSlotTaken reports a unique
// constraint violation on the booking tuple.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because
// of conflicting state, such as deleting a court that still has future
// bookings. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is returned when inserting a booking collides with the
// UNIQUE KEY on (court_id, date, starting_time). This is the authoritative
// loser-of-the-race signal: two requests can both pass validation, but
// only one insert succeeds.
var ErrSlotTaken = errors.New("slot already booked")
