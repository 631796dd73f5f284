package model

import "time"

// Reservation commits a number of seats of one event to one customer.
// Rows are created exclusively by the reservation service and are
// append-only: they are never updated or deleted after creation.
//
// Fields:
//  ID        – primary key identifier, assigned on creation.
//  EventID   – event the seats belong to.
//  Customer  – name of the customer holding the seats (non-empty).
//  Seats     – number of seats committed (positive).
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    `json:"id"`         // reservations.id
	EventID   uint64    `json:"event_id"`   // reservations.event_id
	Customer  string    `json:"customer"`   // reservations.customer
	Seats     uint32    `json:"seats"`      // reservations.seats
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
}
