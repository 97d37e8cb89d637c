package main

import (
	"context"
	"flag"
	"os"

	"parkspot/internal/cache"
	"parkspot/internal/config"
	"parkspot/internal/db"
	"parkspot/internal/logging"
	"parkspot/internal/repository"
	"parkspot/internal/service"
)

func main() {
	spots := flag.Int("spots", 10, "number of empty spots to create")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.AppEnv, cfg.LogLevel)

	if *spots <= 0 {
		log.Error("spots must be positive", "spots", *spots)
		os.Exit(2)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.MySQLDSN, cfg.SQLitePath)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("database ready", "driver", cfg.DBDriver)

	svc := service.NewReservationService(
		repository.NewSpotRepository(gormDB),
		repository.NewUserRepository(gormDB),
		cache.Disabled(),
		service.ReservationOptions{},
	)

	ctx := context.Background()
	created := 0
	for i := 0; i < *spots; i++ {
		spot, err := svc.CreateEmptySpot(ctx)
		if err != nil {
			log.Error("failed to create spot", "created", created, "error", err)
			os.Exit(1)
		}
		created++
		log.Debug("spot created", "spot_id", spot.ID)
	}

	log.Info("seed completed", "spots_created", created)
}
