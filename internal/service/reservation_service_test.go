package service_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/queue"
	"github.com/iliyamo/event-reservation/internal/repository"
	"github.com/iliyamo/event-reservation/internal/service"
	"github.com/iliyamo/event-reservation/internal/testutil"
)

// capturePublisher records published confirmation events instead of
// talking to a broker.
type capturePublisher struct {
	mu     sync.Mutex
	events []queue.ReservationConfirmedEvent
}

func (p *capturePublisher) PublishReservationConfirmed(_ context.Context, event queue.ReservationConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) published() []queue.ReservationConfirmedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]queue.ReservationConfirmedEvent, len(p.events))
	copy(out, p.events)
	return out
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newService(db *sql.DB, publisher service.EventPublisher) *service.ReservationService {
	return service.NewReservationService(
		db,
		repository.NewEventRepo(db),
		repository.NewReservationRepo(db),
		repository.NewPaymentRepo(db),
		publisher,
		quietLogger(),
	)
}

// Validation failures must never reach the database, so these tests run
// against a handle that was opened but never connected.
func TestReserveValidation(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("mysql", "unreachable@tcp(127.0.0.1:1)/none")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := newService(db, nil)

	t.Run("empty customer", func(t *testing.T) {
		_, _, err := svc.Reserve(context.Background(), "", 1, 1)
		var invalid *service.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Reason, "customer")
	})

	t.Run("whitespace customer", func(t *testing.T) {
		_, _, err := svc.Reserve(context.Background(), "   ", 1, 1)
		var invalid *service.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("zero seats", func(t *testing.T) {
		_, _, err := svc.Reserve(context.Background(), "Alice", 1, 0)
		var invalid *service.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Reason, "seat count")
	})

	t.Run("negative seats", func(t *testing.T) {
		_, _, err := svc.Reserve(context.Background(), "Alice", 1, -3)
		var invalid *service.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("zero event id", func(t *testing.T) {
		_, _, err := svc.Reserve(context.Background(), "Alice", 0, 1)
		var invalid *service.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("non-positive payment amount", func(t *testing.T) {
		_, err := svc.RecordPayment(context.Background(), 1, 0)
		var invalid *service.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestReservationService(t *testing.T) {
	db := testutil.NewTestDB(t)
	publisher := &capturePublisher{}
	svc := newService(db, publisher)

	t.Run("successful reservation decrements and persists", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		eventID := testutil.InsertEvent(t, ctx, db, "Concierto", 100, 100)

		res, remaining, err := svc.Reserve(ctx, "Alice", eventID, 10)
		require.NoError(t, err)
		assert.NotZero(t, res.ID)
		assert.Equal(t, uint32(10), res.Seats)
		assert.Equal(t, uint32(90), remaining)
		assert.False(t, res.CreatedAt.IsZero())

		got, err := svc.GetAvailability(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, uint32(90), got)

		events := publisher.published()
		require.NotEmpty(t, events)
		last := events[len(events)-1]
		assert.Equal(t, res.ID, last.ReservationID)
		assert.Equal(t, "Concierto", last.EventName)
		assert.Equal(t, uint32(90), last.RemainingSeats)
	})

	t.Run("insufficient seats leaves state unchanged", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		eventID := testutil.InsertEvent(t, ctx, db, "Teatro", 100, 5)

		_, _, err := svc.Reserve(ctx, "Bob", eventID, 10)
		var insufficient *service.InsufficientSeatsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, uint32(5), insufficient.Remaining)

		remaining, err := svc.GetAvailability(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, uint32(5), remaining)

		reservations, err := svc.ListReservations(ctx)
		require.NoError(t, err)
		assert.Empty(t, reservations)
	})

	t.Run("unknown event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)

		_, _, err := svc.Reserve(ctx, "Carol", 999, 1)
		assert.ErrorIs(t, err, service.ErrUnknownEvent)

		_, err = svc.GetAvailability(ctx, 999)
		assert.ErrorIs(t, err, service.ErrUnknownEvent)
	})

	t.Run("reserve is not idempotent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		eventID := testutil.InsertEvent(t, ctx, db, "Concierto", 100, 100)

		first, _, err := svc.Reserve(ctx, "Alice", eventID, 10)
		require.NoError(t, err)
		second, remaining, err := svc.Reserve(ctx, "Alice", eventID, 10)
		require.NoError(t, err)

		// Two identical requests create two reservations and decrement
		// twice; there is no deduplication key.
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, uint32(80), remaining)
	})

	t.Run("seat conservation invariant holds", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		eventID := testutil.InsertEvent(t, ctx, db, "Concierto", 100, 100)

		for _, seats := range []int64{10, 25, 5} {
			_, _, err := svc.Reserve(ctx, "Alice", eventID, seats)
			require.NoError(t, err)
		}
		// one loser does not disturb the sum
		_, _, err := svc.Reserve(ctx, "Bob", eventID, 100)
		var insufficient *service.InsufficientSeatsError
		require.ErrorAs(t, err, &insufficient)

		sum, err := repository.NewReservationRepo(db).SumSeatsByEvent(ctx, eventID)
		require.NoError(t, err)
		remaining, err := svc.GetAvailability(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, uint64(100)-uint64(remaining), sum)
		assert.Equal(t, uint32(60), remaining)
	})

	t.Run("list reservations by event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		eventA := testutil.InsertEvent(t, ctx, db, "Concierto", 100, 100)
		eventB := testutil.InsertEvent(t, ctx, db, "Teatro", 50, 50)

		_, _, err := svc.Reserve(ctx, "Alice", eventA, 2)
		require.NoError(t, err)
		_, _, err = svc.Reserve(ctx, "Bob", eventB, 3)
		require.NoError(t, err)

		forA, err := svc.ListReservationsByEvent(ctx, eventA)
		require.NoError(t, err)
		require.Len(t, forA, 1)
		assert.Equal(t, "Alice", forA[0].Customer)

		_, err = svc.ListReservationsByEvent(ctx, eventB+1000)
		assert.ErrorIs(t, err, service.ErrUnknownEvent)
	})

	t.Run("record payment against reservation", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, db)
		eventID := testutil.InsertEvent(t, ctx, db, "Concierto", 100, 100)

		res, _, err := svc.Reserve(ctx, "Alice", eventID, 2)
		require.NoError(t, err)

		payment, err := svc.RecordPayment(ctx, res.ID, 5000)
		require.NoError(t, err)
		assert.Equal(t, res.ID, payment.ReservationID)
		assert.Equal(t, uint64(5000), payment.AmountCents)

		_, err = svc.RecordPayment(ctx, res.ID+1000, 5000)
		assert.ErrorIs(t, err, service.ErrUnknownReservation)
	})
}

// Two concurrent requests race for the last seats: exactly one must win
// and the final count must never go negative.
func TestReserveConcurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newService(db, nil)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, db)
	eventID := testutil.InsertEvent(t, ctx, db, "Final", 100, 5)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Reserve(ctx, "Racer", eventID, 3)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var insufficient *service.InsufficientSeatsError
		require.ErrorAs(t, err, &insufficient, "unexpected error kind: %v", err)
		assert.Equal(t, uint32(2), insufficient.Remaining)
		losses++
	}
	assert.Equal(t, 1, wins, "exactly one request must win the race")
	assert.Equal(t, 1, losses, "exactly one request must lose the race")

	remaining, err := svc.GetAvailability(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), remaining)

	sum, err := repository.NewReservationRepo(db).SumSeatsByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum)
}
