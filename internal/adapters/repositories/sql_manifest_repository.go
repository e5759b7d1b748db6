package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"transport-planner-service/internal/domain"
	"transport-planner-service/internal/platform/obs"
)

// SQL-backed implementation of the ManifestSource port.
// Rows are stored as JSON arrays of cells so any workbook layout fits.
type SQLManifestRepository struct{ DB *sql.DB }

func NewSQLManifestRepository(db *sql.DB) *SQLManifestRepository {
	return &SQLManifestRepository{DB: db}
}

// Return the stored manifest snapshot.
func (s *SQLManifestRepository) LoadManifest(ctx context.Context) (_ domain.Table, err error) {
	defer obs.Time(ctx, "manifest.LoadManifest")(&err)

	if s.DB == nil {
		return domain.Table{}, errors.New("sql manifest repository: DB is nil")
	}

	header, err := s.header(ctx)
	if err != nil {
		return domain.Table{}, err
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT cells
	FROM manifest_rows
	ORDER BY row_no;
	`)
	if err != nil {
		return domain.Table{}, fmt.Errorf("load manifest: query manifest_rows table: %w", err)
	}
	defer rows.Close()

	table := domain.Table{Header: header, Rows: make([][]string, 0, 128)}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return domain.Table{}, fmt.Errorf("load manifest: scan row: %w", err)
		}

		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return domain.Table{}, fmt.Errorf("load manifest: decode row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, cells)
	}

	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("load manifest: row iteration: %w", err)
	}

	return table, nil
}

func (s *SQLManifestRepository) header(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT name
	FROM manifest_header
	ORDER BY col_no;
	`)
	if err != nil {
		return nil, fmt.Errorf("load manifest: query manifest_header table: %w", err)
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("load manifest: scan header: %w", err)
		}
		header = append(header, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load manifest: header iteration: %w", err)
	}

	return header, nil
}
