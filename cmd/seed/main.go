package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/everestcrafts/souvenirs-backend/internal/seed"
	"github.com/everestcrafts/souvenirs-backend/pkg/config"
	"github.com/everestcrafts/souvenirs-backend/pkg/db"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := seed.Run(ctx, dbClient.DB(), logg); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
}
