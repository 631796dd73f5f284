// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// reservation service to distinguish between different failure scenarios
// without parsing database errors. For example, ErrInsufficientSeats
// signals that a conditional seat decrement did not apply because the
// event ran out of capacity, while ErrEventNotFound signals that the
// referenced event row does not exist at all.
package repository

import "errors"

// ErrEventNotFound is returned when an event lookup or a conditional
// seat decrement references an event id with no matching row.
var ErrEventNotFound = errors.New("event not found")

// ErrInsufficientSeats is returned when a conditional seat decrement
// finds fewer remaining seats than requested. The event row is left
// untouched in that case.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")
