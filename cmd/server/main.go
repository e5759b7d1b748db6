package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"transport-planner-service/internal/adapters/metrics"
	"transport-planner-service/internal/adapters/repositories"
	"transport-planner-service/internal/api"
	"transport-planner-service/internal/config"
	"transport-planner-service/internal/platform/db"
	"transport-planner-service/internal/platform/logger"
	"transport-planner-service/internal/ports"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires the SQL repositories and metrics sink behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	log := logger.New("server", config.Get("LOG_LEVEL", "info"))

	cfg, err := config.Load(config.Get("CONFIG_PATH", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = log.Level(logger.ParseLevel(cfg.Logging.Level))
	if envErr != nil {
		log.Debug().Msg("no .env file found (using environment variables)")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := repositories.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, dialect, cfg.Database.SeedPath, log); err != nil {
		return err
	}

	var sink ports.PlanMetrics = metrics.NopSink{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPromSink()
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		sink = prom
		metricsHandler = promhttp.Handler()
	}

	router := api.NewRouter(api.Deps{
		Manifest:       repositories.NewSQLManifestRepository(conn),
		Roster:         repositories.NewSQLDriverRepository(conn),
		Metrics:        sink,
		Planner:        cfg.Planner,
		MetricsHandler: metricsHandler,
		Ping:           conn.PingContext,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout(),
		ReadTimeout:       cfg.Server.ReadTimeout(),
		WriteTimeout:      cfg.Server.WriteTimeout(),
		IdleTimeout:       cfg.Server.IdleTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", string(dialect)).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string, log zerolog.Logger) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", seedPath).Msg("seed file not found, starting with current data")
		return nil
	}

	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Str("path", seedPath).Msg("seed applied")

	return nil
}
