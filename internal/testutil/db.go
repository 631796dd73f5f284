// Package testutil provides shared helpers for integration tests that
// need a real MySQL database. Tests skip automatically when no database
// is reachable, so the unit suite stays runnable everywhere.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/event-reservation/internal/database"
)

const defaultTestDSN = "root@tcp(localhost:3306)/event_reservation_test?charset=utf8mb4&parseTime=true&loc=UTC"

// NewTestDB opens the test database, ensures the schema exists and
// registers cleanup. When the database is unreachable the calling test
// is skipped. Set TEST_DB_DSN to point at a different instance.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("skipping MySQL integration tests: %v", err)
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to ensure schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TruncateAll removes all rows from the reservation tables. Deletes run
// child-first so foreign keys never block them.
func TruncateAll(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"payments", "reservations", "events"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}

// InsertEvent inserts an event row directly and returns its id.
func InsertEvent(t *testing.T, ctx context.Context, db *sql.DB, name string, total, remaining uint32) uint64 {
	t.Helper()
	res, err := db.ExecContext(ctx,
		`INSERT INTO events (name, date, total_seats, remaining_seats) VALUES (?, ?, ?, ?)`,
		name, time.Date(2026, 12, 1, 20, 0, 0, 0, time.UTC), total, remaining,
	)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insert event id: %v", err)
	}
	return uint64(id)
}
