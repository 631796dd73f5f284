package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL for the reservation system. Statements are
// idempotent so EnsureSchema can run at provisioning time and in test
// setup without checking current state first.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name            VARCHAR(255)    NOT NULL,
		date            DATETIME        NOT NULL,
		total_seats     INT UNSIGNED    NOT NULL,
		remaining_seats INT UNSIGNED    NOT NULL,
		PRIMARY KEY (id),
		CONSTRAINT chk_events_remaining CHECK (remaining_seats <= total_seats)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		event_id   BIGINT UNSIGNED NOT NULL,
		customer   VARCHAR(255)    NOT NULL,
		seats      INT UNSIGNED    NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_event (event_id),
		CONSTRAINT fk_reservations_event FOREIGN KEY (event_id) REFERENCES events (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reservation_id BIGINT UNSIGNED NOT NULL,
		amount_cents   BIGINT UNSIGNED NOT NULL,
		paid_at        TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_payments_reservation (reservation_id),
		CONSTRAINT fk_payments_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the events, reservations and payments tables if
// they do not exist. It is called by the provisioning tool, never by
// the server itself.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
