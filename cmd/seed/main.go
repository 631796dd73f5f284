// Command seed provisions the reservation database: it creates the
// schema and inserts a set of sample events. Event rows are only ever
// created here; the server mutates remaining_seats and nothing else.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/event-reservation/internal/config"
	"github.com/iliyamo/event-reservation/internal/database"
	"github.com/iliyamo/event-reservation/internal/model"
	"github.com/iliyamo/event-reservation/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}
	log.Println("schema ensured")

	eventRepo := repository.NewEventRepo(db)

	existing, err := eventRepo.List(ctx)
	if err != nil {
		log.Fatalf("listing events failed: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("events table already has %d rows, skipping seed", len(existing))
		return
	}

	samples := []model.Event{
		{Name: "Concierto de Rock", Date: time.Date(2026, 10, 12, 20, 0, 0, 0, time.UTC), TotalSeats: 500, RemainingSeats: 500},
		{Name: "Obra de Teatro", Date: time.Date(2026, 10, 20, 19, 30, 0, 0, time.UTC), TotalSeats: 120, RemainingSeats: 120},
		{Name: "Conferencia de Tecnologia", Date: time.Date(2026, 11, 5, 9, 0, 0, 0, time.UTC), TotalSeats: 300, RemainingSeats: 300},
	}
	for i := range samples {
		if err := eventRepo.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("seeding event %q failed: %v", samples[i].Name, err)
		}
		log.Printf("seeded event %d: %s (%d seats)", samples[i].ID, samples[i].Name, samples[i].TotalSeats)
	}
}
