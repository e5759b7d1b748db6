package main

import (
	"database/sql"
	"flag"
	"os"
	"transport-planner-service/internal/adapters/repositories"
	"transport-planner-service/internal/config"
	"transport-planner-service/internal/platform/db"
	"transport-planner-service/internal/platform/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("dbtool", config.Get("LOG_LEVEL", "info"))

	cfg, err := config.Load(config.Get("CONFIG_PATH", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	seedPath := flag.String("seed", cfg.Database.SeedPath, "seed JSON file (drivers and manifest)")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	dialect, err := repositories.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal().Err(err).Msg("database driver")
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if *schemaOnly {
		*seedPath = ""
	}
	if err := initAndSeed(conn, dialect, *seedPath, log); err != nil {
		log.Error().Err(err).Msg("dbtool failed")
		conn.Close()
		os.Exit(1)
	}
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string, log zerolog.Logger) error {
	log.Info().Str("dialect", string(dialect)).Msg("initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	if seedPath == "" {
		return nil
	}

	log.Info().Str("path", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")

	return nil
}
