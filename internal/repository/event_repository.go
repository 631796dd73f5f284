// Package repository contains data access logic for the reservation
// system. This file implements the inventory store: it owns every write
// to events.remaining_seats. No other component mutates that column.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction

	"github.com/iliyamo/event-reservation/internal/model"
)

// EventRepo manages persistence for events and their seat inventory.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.  Use this method to
// obtain a *sql.DB when you need fine-grained transaction control.
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

// GetByID returns a single event by its id, or ErrEventNotFound when
// no row matches.
func (r *EventRepo) GetByID(ctx context.Context, eventID uint64) (*model.Event, error) {
	const q = `SELECT id, name, date, total_seats, remaining_seats FROM events WHERE id = ?`
	var ev model.Event
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&ev.ID, &ev.Name, &ev.Date, &ev.TotalSeats, &ev.RemainingSeats,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// GetAvailability returns the remaining seat count for an event.  It is
// side-effect-free and must never be used to gate a reservation; the
// only authoritative availability check is the conditional decrement in
// TryReserveTx.
func (r *EventRepo) GetAvailability(ctx context.Context, eventID uint64) (uint32, error) {
	const q = `SELECT remaining_seats FROM events WHERE id = ?`
	var remaining uint32
	if err := r.db.QueryRowContext(ctx, q, eventID).Scan(&remaining); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	return remaining, nil
}

// List returns all events ordered by date ascending.  When no events
// exist an empty slice is returned.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT id, name, date, total_seats, remaining_seats FROM events ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.Date, &ev.TotalSeats, &ev.RemainingSeats); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// TryReserveTx atomically decrements remaining_seats by seats within the
// provided transaction, but only when enough seats remain.  The guard
// lives in the UPDATE itself so that two concurrent callers can never
// both observe sufficient availability and both succeed; the losing
// statement simply matches zero rows.  Reading availability first and
// writing afterwards would reintroduce the lost-update race.
//
// On success it returns the post-decrement remaining count.  When the
// UPDATE matches no row, the event row is re-read inside the same
// transaction to distinguish ErrEventNotFound from ErrInsufficientSeats;
// the latter is returned together with the current remaining count.
func (r *EventRepo) TryReserveTx(ctx context.Context, tx *sql.Tx, eventID uint64, seats uint32) (uint32, error) {
	const upd = `UPDATE events SET remaining_seats = remaining_seats - ?
	             WHERE id = ? AND remaining_seats >= ?`
	res, err := tx.ExecContext(ctx, upd, seats, eventID, seats)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	const sel = `SELECT remaining_seats FROM events WHERE id = ?`
	var remaining uint32
	if err := tx.QueryRowContext(ctx, sel, eventID).Scan(&remaining); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if affected == 0 {
		return remaining, ErrInsufficientSeats
	}
	return remaining, nil
}

// Create inserts a new event and assigns the generated ID back to the
// struct.  It is used only by the provisioning tool; the reservation
// core never creates events.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	const q = `INSERT INTO events (name, date, total_seats, remaining_seats) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ev.Name, ev.Date, ev.TotalSeats, ev.RemainingSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}
