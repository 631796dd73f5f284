package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/queue"
	"github.com/iliyamo/event-reservation/internal/repository"
)

// EventPublisher delivers a confirmation event to interested consumers
// (ticket rendering, notifications). Publishing is fire-and-forget: a
// failure is logged and never affects the committed reservation.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error
}

// ReservationService is the transaction manager for seat reservations.
// It validates requests and commits the seat decrement and the
// reservation record as one database transaction, so a race loser or a
// failed insert never leaves partial state behind. It performs no
// retries; retry policy belongs to the caller.
type ReservationService struct {
	db           *sql.DB
	events       *repository.EventRepo
	reservations *repository.ReservationRepo
	payments     *repository.PaymentRepo
	publisher    EventPublisher
	log          *logrus.Logger
}

// NewReservationService constructs a ReservationService. The db handle
// must be the same one the repositories are bound to, since transactions
// begun here are passed into their Tx methods. publisher may be nil to
// disable confirmation events.
func NewReservationService(db *sql.DB, events *repository.EventRepo, reservations *repository.ReservationRepo, payments *repository.PaymentRepo, publisher EventPublisher, log *logrus.Logger) *ReservationService {
	if db == nil || events == nil || reservations == nil || payments == nil {
		panic("nil dependency passed to NewReservationService")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReservationService{
		db:           db,
		events:       events,
		reservations: reservations,
		payments:     payments,
		publisher:    publisher,
		log:          log,
	}
}

// Reserve commits seats seats of event eventID to customer. On success
// it returns the persisted reservation and the post-commit remaining
// seat count. On failure it returns one of the typed errors from
// errors.go and no state change.
//
// Reserve is intentionally not idempotent: calling it twice with the
// same arguments creates two reservations and decrements inventory
// twice. The original system has no deduplication key, and inventing
// one here would change the contract callers depend on.
func (s *ReservationService) Reserve(ctx context.Context, customer string, eventID uint64, seats int64) (*model.Reservation, uint32, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return nil, 0, &InvalidRequestError{Reason: "customer name must not be empty"}
	}
	if seats <= 0 {
		return nil, 0, &InvalidRequestError{Reason: "seat count must be positive"}
	}
	if seats > int64(^uint32(0)) {
		return nil, 0, &InvalidRequestError{Reason: "seat count out of range"}
	}
	if eventID == 0 {
		return nil, 0, &InvalidRequestError{Reason: "event id must be positive"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, &StorageError{Op: "begin reservation transaction", Err: err}
	}
	committed := false
	decremented := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone && decremented {
			// The decrement may have applied without its reservation row.
			// This is the one failure mode that can break the seat
			// conservation invariant, so it is logged loudly instead of
			// being retried here.
			s.log.WithFields(logrus.Fields{
				"event_id": eventID,
				"customer": customer,
				"seats":    seats,
				"error":    rbErr,
			}).Error("consistency risk: rollback failed after seat decrement")
		}
	}()

	remaining, err := s.events.TryReserveTx(ctx, tx, eventID, uint32(seats))
	if err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return nil, 0, ErrUnknownEvent
		case repository.ErrInsufficientSeats:
			return nil, 0, &InsufficientSeatsError{Remaining: remaining}
		default:
			return nil, 0, &StorageError{Op: "seat decrement", Err: err}
		}
	}
	decremented = true

	res := &model.Reservation{
		EventID:  eventID,
		Customer: customer,
		Seats:    uint32(seats),
	}
	if err := s.reservations.CreateTx(ctx, tx, res); err != nil {
		return nil, 0, &StorageError{Op: "reservation insert", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, &StorageError{Op: "reservation commit", Err: err}
	}
	committed = true

	s.publishConfirmed(ctx, res, remaining)

	return res, remaining, nil
}

// publishConfirmed emits a ReservationConfirmedEvent after a successful
// commit. Errors are logged and swallowed: the reservation stands
// whether or not anyone renders a ticket for it.
func (s *ReservationService) publishConfirmed(ctx context.Context, res *model.Reservation, remaining uint32) {
	if s.publisher == nil {
		return
	}
	ev, err := s.events.GetByID(ctx, res.EventID)
	name := ""
	date := ""
	if err == nil {
		name = ev.Name
		date = ev.Date.UTC().Format(time.RFC3339)
	}
	event := queue.ReservationConfirmedEvent{
		ReservationID:  res.ID,
		EventID:        res.EventID,
		EventName:      name,
		EventDate:      date,
		Customer:       res.Customer,
		Seats:          res.Seats,
		RemainingSeats: remaining,
		ReservedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishReservationConfirmed(ctx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"reservation_id": res.ID,
			"event_id":       res.EventID,
		}).WithError(err).Warn("publish reservation.confirmed failed")
	}
}

// GetAvailability returns the remaining seats for an event. It is a
// thin pass-through over the inventory store; the result is for display
// only and never gates a reservation.
func (s *ReservationService) GetAvailability(ctx context.Context, eventID uint64) (uint32, error) {
	remaining, err := s.events.GetAvailability(ctx, eventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return 0, ErrUnknownEvent
		}
		return 0, &StorageError{Op: "availability query", Err: err}
	}
	return remaining, nil
}

// ListEvents returns all events with their current availability.
func (s *ReservationService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "event listing", Err: err}
	}
	return events, nil
}

// ListReservations returns all committed reservations, newest first.
func (s *ReservationService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "reservation listing", Err: err}
	}
	return reservations, nil
}

// ListReservationsByEvent returns the committed reservations for one
// event, newest first. The event must exist; an unknown id yields
// ErrUnknownEvent rather than an empty list.
func (s *ReservationService) ListReservationsByEvent(ctx context.Context, eventID uint64) ([]model.Reservation, error) {
	if _, err := s.GetAvailability(ctx, eventID); err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, &StorageError{Op: "reservation listing", Err: err}
	}
	return reservations, nil
}

// GetReservation returns a single reservation by id.
func (s *ReservationService) GetReservation(ctx context.Context, reservationID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return nil, ErrUnknownReservation
		}
		return nil, &StorageError{Op: "reservation lookup", Err: err}
	}
	return res, nil
}

// RecordPayment records a payment against an existing reservation.
// Payments are peripheral: failure to record one never invalidates the
// reservation, and nothing checks that the amount covers the seats.
func (s *ReservationService) RecordPayment(ctx context.Context, reservationID uint64, amountCents int64) (*model.Payment, error) {
	if amountCents <= 0 {
		return nil, &InvalidRequestError{Reason: "payment amount must be positive"}
	}
	if _, err := s.GetReservation(ctx, reservationID); err != nil {
		return nil, err
	}
	p := &model.Payment{
		ReservationID: reservationID,
		AmountCents:   uint64(amountCents),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, &StorageError{Op: "payment insert", Err: err}
	}
	return p, nil
}
