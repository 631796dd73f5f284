package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/handler"
	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/service"
)

func TestEventHandler_ListEvents(t *testing.T) {
	t.Parallel()

	fake := &fakeService{events: []model.Event{
		{ID: 1, Name: "Concierto", Date: time.Date(2026, 10, 12, 20, 0, 0, 0, time.UTC), TotalSeats: 500, RemainingSeats: 480},
	}}
	h := handler.NewEventHandler(fake)

	rec := doRequest(t, h.ListEvents, http.MethodGet, "/v1/events", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Events []model.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, uint32(480), body.Events[0].RemainingSeats)
}

func TestEventHandler_GetAvailability(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		fake := &fakeService{availability: 37}
		h := handler.NewEventHandler(fake)

		rec := doRequest(t, h.GetAvailability, http.MethodGet, "/v1/events/1/availability", "", map[string]string{"id": "1"})

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(37), body["remaining_seats"])
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		fake := &fakeService{availErr: service.ErrUnknownEvent}
		h := handler.NewEventHandler(fake)

		rec := doRequest(t, h.GetAvailability, http.MethodGet, "/v1/events/999/availability", "", map[string]string{"id": "999"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id maps to 400", func(t *testing.T) {
		h := handler.NewEventHandler(&fakeService{})

		rec := doRequest(t, h.GetAvailability, http.MethodGet, "/v1/events/x/availability", "", map[string]string{"id": "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
