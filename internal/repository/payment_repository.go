package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-reservation/internal/model"
)

// PaymentRepo records payments against reservations.  Payments are
// peripheral: a reservation is valid with or without one, and nothing
// in the reservation path depends on this table.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Create inserts a payment row and assigns the generated ID and the
// DB-default paid_at timestamp back to the struct.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (reservation_id, amount_cents) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.ReservationID, p.AmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT paid_at FROM payments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.PaidAt)
}

// ListByReservation returns all payments recorded for a reservation,
// oldest first.
func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	const q = `SELECT id, reservation_id, amount_cents, paid_at FROM payments WHERE reservation_id = ? ORDER BY paid_at, id`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.AmountCents, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
