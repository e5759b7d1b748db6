package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"transport-planner-service/internal/domain"
	"transport-planner-service/internal/platform/obs"
)

// SQL-backed implementation of the DriverRoster port.
type SQLDriverRepository struct{ DB *sql.DB }

func NewSQLDriverRepository(db *sql.DB) *SQLDriverRepository {
	return &SQLDriverRepository{DB: db}
}

// Return all drivers ordered by driver_id, which fixes rotation order.
func (s *SQLDriverRepository) ListDrivers(ctx context.Context) (_ []domain.Driver, err error) {
	defer obs.Time(ctx, "drivers.ListDrivers")(&err)

	if s.DB == nil {
		return nil, errors.New("sql driver repository: DB is nil")
	}

	query := `
	SELECT
		license_plate,
		driver_name,
		phone,
		station
	FROM drivers
	ORDER BY driver_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]domain.Driver, 0, 32)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.LicensePlate, &d.Name, &d.Phone, &d.Station); err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}
		d.Station = domain.NormalizeStation(d.Station)
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}
