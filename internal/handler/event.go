package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters

	"github.com/labstack/echo/v4" // Echo web framework
)

// EventHandler exposes the read side of the event inventory: browsing
// events and querying seat availability. Both endpoints may be served
// through the response cache; a cached availability value is for
// display only and never gates a reservation.
type EventHandler struct {
	Service ReservationAPI
}

// NewEventHandler constructs an EventHandler. The service must be non-nil.
func NewEventHandler(svc ReservationAPI) *EventHandler {
	if svc == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Service: svc}
}

// ListEvents handles GET /v1/events.  It returns all events with their
// total and remaining seat counts.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.Service.ListEvents(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// GetAvailability handles GET /v1/events/:id/availability.  It returns
// the remaining seat count for one event, or 404 when the event does
// not exist.
func (h *EventHandler) GetAvailability(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	remaining, err := h.Service.GetAvailability(c.Request().Context(), eventID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id":        eventID,
		"remaining_seats": remaining,
	})
}
