package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/sirupsen/logrus"  // Structured logging for the service layer

	"github.com/iliyamo/event-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/event-reservation/internal/database"   // MySQL connection helper
	"github.com/iliyamo/event-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/event-reservation/internal/middleware" // Cache and rate limit middleware
	"github.com/iliyamo/event-reservation/internal/queue"      // RabbitMQ publisher and ticket consumer
	"github.com/iliyamo/event-reservation/internal/repository" // Data access layer
	"github.com/iliyamo/event-reservation/internal/router"     // Internal router setup
	"github.com/iliyamo/event-reservation/internal/service"    // Reservation transaction manager
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Repositories share the single pooled DB handle.
	eventRepo := repository.NewEventRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	publisher := queue.NewPublisher(logger)
	svc := service.NewReservationService(db, eventRepo, reservationRepo, paymentRepo, publisher, logger)

	// The ticket consumer renders a document for every confirmed
	// reservation. It reconnects on its own; a dead broker never stops
	// the API from taking reservations.
	go func() {
		if err := queue.StartTicketConsumer(logger); err != nil {
			logger.WithError(err).Warn("ticket consumer stopped")
		}
	}()

	// Redis backs the response cache and the rate limiter. A nil client
	// disables both, and the API keeps working without them.
	rdb := config.NewRedisClient()
	cacheMw := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMw := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()          // Create Echo instance
	router.RegisterRoutes(e) // Register health check
	router.RegisterAPI(e,
		handler.NewEventHandler(svc),
		handler.NewReservationHandler(svc),
		cacheMw,
		rateMw,
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
