package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-reservation/internal/model"
)

// ReservationRepo provides persistence for reservation records. The
// reservations table is append-only: rows are inserted by the
// reservation service inside the same transaction that decrements the
// event's seat inventory, and are never updated or deleted afterwards.
// All timestamp columns are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateTx inserts a new reservation within the scope of an existing
// transaction.  It populates the generated ID and the DB-assigned
// created_at timestamp on the provided record.  The caller must commit
// or rollback the transaction; using the provided tx rather than r.db
// keeps the insert inside the same atomic unit as the seat decrement.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (event_id, customer, seats) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.EventID, res.Customer, res.Seats)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row to populate the DB-default timestamp
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// GetByID returns a single reservation by id, or ErrReservationNotFound
// when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, reservationID uint64) (*model.Reservation, error) {
	const q = `SELECT id, event_id, customer, seats, created_at FROM reservations WHERE id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(
		&res.ID, &res.EventID, &res.Customer, &res.Seats, &res.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// List returns all reservations ordered by creation time descending
// (newest first).  When no reservations exist, an empty slice is
// returned.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT id, event_id, customer, seats, created_at FROM reservations ORDER BY created_at DESC, id DESC`
	return r.queryList(ctx, q)
}

// ListByEvent returns all reservations for one event, newest first.
func (r *ReservationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Reservation, error) {
	const q = `SELECT id, event_id, customer, seats, created_at FROM reservations WHERE event_id = ? ORDER BY created_at DESC, id DESC`
	return r.queryList(ctx, q, eventID)
}

// SumSeatsByEvent returns the total number of seats across all committed
// reservations for an event.  Together with the events row it lets
// operators verify the conservation invariant
// sum(seats) == total_seats - remaining_seats.
func (r *ReservationRepo) SumSeatsByEvent(ctx context.Context, eventID uint64) (uint64, error) {
	const q = `SELECT COALESCE(SUM(seats), 0) FROM reservations WHERE event_id = ?`
	var sum uint64
	if err := r.db.QueryRowContext(ctx, q, eventID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *ReservationRepo) queryList(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.EventID, &res.Customer, &res.Seats, &res.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}
