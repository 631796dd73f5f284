package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/event-reservation/internal/handler" // import the handlers that implement endpoint logic
)

// RegisterRoutes registers routes that do not require any middleware on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the reservation API under /v1.  The read path
// (event browsing, availability and reservation lookups) goes through
// the response cache so repeated lookups do not hit the database;
// cached availability is for display only, and the reservation endpoint
// always re-validates inside its own transaction.  The write path is
// rate limited instead of cached.
func RegisterAPI(e *echo.Echo, events *handler.EventHandler, reservations *handler.ReservationHandler, cache echo.MiddlewareFunc, rateLimit echo.MiddlewareFunc) {
	// Read endpoints: cacheable lookups.
	read := e.Group("/v1", cache)
	read.GET("/events", events.ListEvents)
	read.GET("/events/:id/availability", events.GetAvailability)
	read.GET("/reservations", reservations.List)
	read.GET("/reservations/:id", reservations.GetByID)

	// Write endpoints: rate limited, never cached.
	write := e.Group("/v1", rateLimit)
	write.POST("/reservations", reservations.Create)
	write.POST("/reservations/:id/payments", reservations.RecordPayment)
}
