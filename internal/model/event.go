package model

import "time"

// Event represents a schedulable occurrence with a fixed seat capacity.
// Rows are created by the provisioning tool (cmd/seed); the reservation
// core only ever mutates RemainingSeats, and only downward through a
// committed reservation.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – human readable event name.
//  Date           – when the event takes place.
//  TotalSeats     – seat capacity, fixed at creation.
//  RemainingSeats – seats still available; 0 <= RemainingSeats <= TotalSeats.
type Event struct {
	ID             uint64    `json:"id"`              // events.id
	Name           string    `json:"name"`            // events.name
	Date           time.Time `json:"date"`            // events.date
	TotalSeats     uint32    `json:"total_seats"`     // events.total_seats
	RemainingSeats uint32    `json:"remaining_seats"` // events.remaining_seats
}
