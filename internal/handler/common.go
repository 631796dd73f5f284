package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/service"
)

// ReservationAPI is the surface of the reservation service the HTTP
// layer depends on. Handlers accept this interface instead of the
// concrete service so tests can substitute a fake.
type ReservationAPI interface {
	Reserve(ctx context.Context, customer string, eventID uint64, seats int64) (*model.Reservation, uint32, error)
	GetAvailability(ctx context.Context, eventID uint64) (uint32, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	ListReservationsByEvent(ctx context.Context, eventID uint64) ([]model.Reservation, error)
	GetReservation(ctx context.Context, reservationID uint64) (*model.Reservation, error)
	RecordPayment(ctx context.Context, reservationID uint64, amountCents int64) (*model.Payment, error)
}

// serviceError translates the service error taxonomy into an HTTP
// response. Every handler funnels its service failures through here so
// the mapping stays in one place.
func serviceError(c echo.Context, err error) error {
	var insufficient *service.InsufficientSeatsError
	var invalid *service.InvalidRequestError
	switch {
	case errors.Is(err, service.ErrUnknownEvent):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, service.ErrUnknownReservation):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "insufficient seats",
			"remaining": insufficient.Remaining,
		})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Reason})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
