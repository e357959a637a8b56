package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freight-planner-service/internal/adapters/publisher"
	"freight-planner-service/internal/adapters/repositories"
	"freight-planner-service/internal/api"
	"freight-planner-service/internal/config"
	"freight-planner-service/internal/motion"
	"freight-planner-service/internal/platform/db"
	"freight-planner-service/internal/platform/ids"
	"freight-planner-service/internal/platform/obs"
	"freight-planner-service/internal/ports"
	"freight-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQL, RabbitMQ) behind ports and starts the HTTP server.
func main() {
	cfg, found, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !found {
		level.Info(logger).Log("msg", "no .env file found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger log.Logger) error {
	conn, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed the location catalog on startup.
	if err := initAndSeed(conn, cfg.SeedPath); err != nil {
		return err
	}

	tracking, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	gen := ids.New()
	simOpts := []motion.Option{motion.WithLogger(log.With(logger, "component", "motion"))}
	if cfg.StrictFuel {
		simOpts = append(simOpts, motion.WithStrictFuel())
	}

	var svc services.Service
	svc = services.NewService(
		repositories.NewSQLLocationRepository(conn),
		repositories.NewSQLShipmentRepository(conn),
		gen,
		motion.NewSimulator(simOpts...),
		log.With(logger, "component", "engine"),
	)
	svc = services.NewLoggingService(log.With(logger, "component", "freight"), svc)
	svc = newInstrumentingService(svc)

	router := api.NewRouter(api.Deps{
		Svc:     svc,
		Tracker: services.NewTracker(svc, tracking, gen, cfg.TrackSteps, logger),
		DB:      conn,
		Metrics: promhttp.Handler(),
		Logger:  log.With(logger, "component", "http"),
	})

	level.Info(logger).Log("msg", "server listening", "addr", ":"+cfg.Port, "db", cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return db.OpenPostgres(cfg.DatabaseURL)
	}
	return db.OpenSQLite(cfg.DBPath)
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	locs, err := repositories.LoadLocationSeed(seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedLocations(context.Background(), conn, locs); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// newPublisher logs every tracking update and also fans it out on RabbitMQ
// when RABBITMQ_URL is set. A broker that cannot be reached is logged and
// skipped.
func newPublisher(cfg *config.Config, logger log.Logger) (ports.TrackingPublisher, func()) {
	logPub := publisher.NewLogPublisher(level.Info(logger))
	if cfg.RabbitMQURL == "" {
		return logPub, func() {}
	}

	rabbit, amqpConn, err := publisher.Dial(cfg.RabbitMQURL)
	if err != nil {
		level.Warn(logger).Log("msg", "tracking broker unavailable", "err", err)
		return logPub, func() {}
	}
	return publisher.Multi{logPub, rabbit}, func() {
		_ = rabbit.Close()
		_ = amqpConn.Close()
	}
}

func newInstrumentingService(svc services.Service) services.Service {
	fieldKeys := []string{"method"}
	return services.NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "freight_service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "api",
			Subsystem: "freight_service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: "api",
			Subsystem: "freight_service",
			Name:      "quoted_cost",
			Help:      "Estimated cost of quoted shipments.",
			Buckets:   stdprometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"mode"}),
		svc,
	)
}
