package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/kit/log/level"

	"freight-planner-service/internal/adapters/repositories"
	"freight-planner-service/internal/config"
	"freight-planner-service/internal/platform/db"
	"freight-planner-service/internal/platform/obs"
)

// dbtool prepares a Postgres database: it creates the schema and upserts the
// location catalog from SEED_PATH.
func main() {
	logger, err := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, found, _ := config.Load(); !found {
		level.Info(logger).Log("msg", "no .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		level.Error(logger).Log("err", "DATABASE_URL is required")
		os.Exit(1)
	}

	conn, err := db.OpenPostgres(databaseURL)
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
	defer conn.Close()

	level.Info(logger).Log("msg", "initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		level.Error(logger).Log("msg", "schema initialization failed", "err", err)
		os.Exit(1)
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/locations.json")
	locs, err := repositories.LoadLocationSeed(seedPath)
	if err != nil {
		level.Error(logger).Log("msg", "seeding failed", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "seeding locations", "count", len(locs))
	if err := repositories.SeedLocations(context.Background(), conn, locs); err != nil {
		level.Error(logger).Log("msg", "seeding failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "seeding complete")
}
