// Package service implements the reservation transaction manager. This
// file defines the error taxonomy surfaced to callers. Expected
// outcomes such as a sold-out event are modelled as typed return values
// rather than panics so that transports can map them to precise
// responses and callers can decide their own retry policy.
package service

import (
	"errors"
	"fmt"
)

// ErrUnknownEvent is returned when a reservation or availability query
// references an event id that does not exist. Not retryable.
var ErrUnknownEvent = errors.New("unknown event")

// ErrUnknownReservation is returned when a payment references a
// reservation id that does not exist.
var ErrUnknownReservation = errors.New("unknown reservation")

// InsufficientSeatsError is returned when a reservation requests more
// seats than the event has remaining. It carries the remaining count
// observed inside the atomic check so callers can report it or retry
// with a smaller request. No state changes when this error is returned.
type InsufficientSeatsError struct {
	Remaining uint32
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("insufficient seats: %d remaining", e.Remaining)
}

// InvalidRequestError is returned for caller bugs such as a non-positive
// seat count or an empty customer name. Not retryable.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// StorageError wraps a transient database failure. Callers may retry
// with backoff; the service itself never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure during " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
