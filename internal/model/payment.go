package model

import "time"

// Payment records money received against a reservation. It is recorded
// independently of the reservation itself and is not required for the
// reservation to be valid.
type Payment struct {
	ID            uint64    `json:"id"`             // payments.id
	ReservationID uint64    `json:"reservation_id"` // payments.reservation_id
	AmountCents   uint64    `json:"amount_cents"`   // payments.amount_cents
	PaidAt        time.Time `json:"paid_at"`        // payments.paid_at
}
