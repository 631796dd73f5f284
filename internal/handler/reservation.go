package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-reservation/internal/model"
)

// ReservationHandler exposes the write side of the system: creating
// reservations and recording payments, plus reservation lookups. All
// validation beyond request parsing lives in the service; the handler
// only translates between HTTP and the service contract.
type ReservationHandler struct {
	Service ReservationAPI
}

// NewReservationHandler constructs a ReservationHandler. The service
// must be non-nil.
func NewReservationHandler(svc ReservationAPI) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Service: svc}
}

// Create handles POST /v1/reservations.  The request body must contain
// a JSON object with event_id, customer and seats.  On success it
// returns 201 Created with the reservation and the post-commit
// remaining seat count.  A race loser gets 409 with the current
// remaining count; the caller decides whether to retry with fewer
// seats.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body struct {
		EventID  uint64 `json:"event_id"`
		Customer string `json:"customer"`
		Seats    int64  `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, remaining, err := h.Service.Reserve(c.Request().Context(), body.Customer, body.EventID, body.Seats)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation":     res,
		"remaining_seats": remaining,
	})
}

// List handles GET /v1/reservations.  It returns all reservations,
// newest first.  An optional event_id query parameter narrows the list
// to a single event; an unknown event id is a 404.
func (h *ReservationHandler) List(c echo.Context) error {
	var reservations []model.Reservation
	var err error
	if raw := c.QueryParam("event_id"); raw != "" {
		eventID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil || eventID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
		}
		reservations, err = h.Service.ListReservationsByEvent(c.Request().Context(), eventID)
	} else {
		reservations, err = h.Service.ListReservations(c.Request().Context())
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": reservations})
}

// GetByID handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetByID(c echo.Context) error {
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Service.GetReservation(c.Request().Context(), reservationID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// RecordPayment handles POST /v1/reservations/:id/payments.  Payments
// are recorded independently of the reservation; the reservation is
// valid with or without one.
func (h *ReservationHandler) RecordPayment(c echo.Context) error {
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	payment, err := h.Service.RecordPayment(c.Request().Context(), reservationID, body.AmountCents)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}
