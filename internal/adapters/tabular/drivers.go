package tabular

import (
	"context"
	"errors"
	"fmt"
	"io"
	"transport-planner-service/internal/domain"
)

// CSVDriverRoster reads drivers from a CSV file with a header row.
// Recognized columns: license_plate (car_license, plate), driver_name
// (driver, name), phone, station (origin, airport).
type CSVDriverRoster struct {
	Path string
}

func NewCSVDriverRoster(path string) *CSVDriverRoster {
	return &CSVDriverRoster{Path: path}
}

func (s *CSVDriverRoster) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := readFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return driversFromRecords(records)
}

// ReadDrivers parses a driver roster CSV from r.
func ReadDrivers(r io.Reader) ([]domain.Driver, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read drivers: %w", err)
	}
	return driversFromRecords(records)
}

func driversFromRecords(records [][]string) ([]domain.Driver, error) {
	if len(records) == 0 {
		return []domain.Driver{}, nil
	}

	idx := columnIndex(records[0])
	plate, okPlate := lookup(idx, "license_plate", "car_license", "plate")
	name, okName := lookup(idx, "driver_name", "driver", "name")
	if !okPlate || !okName {
		return nil, errors.New("read drivers: header needs license_plate and driver_name columns")
	}
	phone, _ := lookup(idx, "phone", "tel")
	station, _ := lookup(idx, "station", "origin", "airport")

	drivers := make([]domain.Driver, 0, len(records)-1)
	for _, rec := range records[1:] {
		d := domain.Driver{
			LicensePlate: field(rec, plate),
			Name:         field(rec, name),
			Phone:        field(rec, phone),
			Station:      domain.NormalizeStation(field(rec, station)),
		}
		if d.LicensePlate == "" && d.Name == "" {
			continue
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}
