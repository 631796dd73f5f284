// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published after a reservation transaction
// commits. It carries enough information for downstream consumers to
// render a ticket document or notify the customer without querying the
// primary database. The reservation is valid regardless of whether any
// consumer processes this event.
type ReservationConfirmedEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	EventID        uint64 `json:"event_id"`
	EventName      string `json:"event_name"`
	EventDate      string `json:"event_date"`
	Customer       string `json:"customer"`
	Seats          uint32 `json:"seats"`
	RemainingSeats uint32 `json:"remaining_seats"`
	ReservedAt     string `json:"reserved_at"`
}
