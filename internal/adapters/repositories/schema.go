package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"transport-planner-service/internal/domain"
)

// Initialize the database schema. The DDL is valid for SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		driver_id INTEGER PRIMARY KEY,
		license_plate TEXT NOT NULL,
		driver_name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		station TEXT NOT NULL DEFAULT 'ANY'
	);
	`

	createManifestHeaderQuery := `
	CREATE TABLE IF NOT EXISTS manifest_header (
		col_no INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createManifestRowsQuery := `
	CREATE TABLE IF NOT EXISTS manifest_rows (
		row_no INTEGER PRIMARY KEY,
		cells TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_drivers_station
	ON drivers(station, driver_id);
	`

	statements := []string{
		createDriversQuery,
		createManifestHeaderQuery,
		createManifestRowsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DriverSeed struct {
	DriverID     int    `json:"driver_id"`
	LicensePlate string `json:"license_plate"`
	DriverName   string `json:"driver_name"`
	Phone        string `json:"phone"`
	Station      string `json:"station"`
}

type ManifestSeed struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type Seed struct {
	Drivers  []DriverSeed  `json:"drivers"`
	Manifest *ManifestSeed `json:"manifest"`
}

// Populate the database with drivers and a manifest snapshot from a JSON file.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	return ApplySeed(db, dialect, data)
}

// ApplySeed upserts drivers and, when present, replaces the stored manifest.
func ApplySeed(db *sql.DB, dialect Dialect, data Seed) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	for i, d := range data.Drivers {
		if d.DriverID <= 0 {
			return fmt.Errorf("seed drivers: invalid driver_id at index %d: %d", i+1, d.DriverID)
		}
		if strings.TrimSpace(d.LicensePlate) == "" && strings.TrimSpace(d.DriverName) == "" {
			return fmt.Errorf("seed drivers: driver_id=%d has neither plate nor name", d.DriverID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if len(data.Drivers) > 0 {
		stmt, err := tx.Prepare(dialect.upsert("drivers", "driver_id", []string{"license_plate", "driver_name", "phone", "station"}))
		if err != nil {
			return fmt.Errorf("seed drivers: prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, d := range data.Drivers {
			_, err := stmt.Exec(
				d.DriverID,
				strings.TrimSpace(d.LicensePlate),
				strings.TrimSpace(d.DriverName),
				strings.TrimSpace(d.Phone),
				domain.NormalizeStation(d.Station),
			)
			if err != nil {
				return fmt.Errorf("seed drivers: insert driver_id=%d: %w", d.DriverID, err)
			}
		}
	}

	if data.Manifest != nil {
		if err := replaceManifest(tx, dialect, *data.Manifest); err != nil {
			return fmt.Errorf("seed manifest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func replaceManifest(tx *sql.Tx, dialect Dialect, m ManifestSeed) error {
	if _, err := tx.Exec("DELETE FROM manifest_header;"); err != nil {
		return fmt.Errorf("clear header: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM manifest_rows;"); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}

	headerQuery := fmt.Sprintf("INSERT INTO manifest_header (col_no, name) VALUES (%s);", dialect.placeholders(2))
	for i, h := range m.Header {
		if _, err := tx.Exec(headerQuery, i, h); err != nil {
			return fmt.Errorf("insert header col %d: %w", i, err)
		}
	}

	rowQuery := fmt.Sprintf("INSERT INTO manifest_rows (row_no, cells) VALUES (%s);", dialect.placeholders(2))
	for i, r := range m.Rows {
		cells, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i+1, err)
		}
		if _, err := tx.Exec(rowQuery, i+1, string(cells)); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	return nil
}
