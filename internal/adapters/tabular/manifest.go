package tabular

import (
	"context"
	"fmt"
	"io"
	"transport-planner-service/internal/domain"
)

// CSVManifestSource reads a manifest exported from the planning workbook.
// Rows above HeaderRow are discarded; a negative HeaderRow means no header.
type CSVManifestSource struct {
	Path      string
	HeaderRow int
}

func NewCSVManifestSource(path string, headerRow int) *CSVManifestSource {
	return &CSVManifestSource{Path: path, HeaderRow: headerRow}
}

func (s *CSVManifestSource) LoadManifest(ctx context.Context) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}

	records, err := readFile(s.Path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("load manifest: %w", err)
	}
	return tableFromRecords(records, s.HeaderRow)
}

// ReadManifest parses manifest CSV from r.
func ReadManifest(r io.Reader, headerRow int) (domain.Table, error) {
	records, err := readAll(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("read manifest: %w", err)
	}
	return tableFromRecords(records, headerRow)
}

func tableFromRecords(records [][]string, headerRow int) (domain.Table, error) {
	if headerRow < 0 {
		return domain.Table{Rows: records}, nil
	}
	if headerRow >= len(records) {
		if len(records) == 0 {
			return domain.Table{}, nil
		}
		return domain.Table{}, fmt.Errorf("read manifest: header row %d beyond %d rows", headerRow, len(records))
	}

	return domain.Table{
		Header: records[headerRow],
		Rows:   records[headerRow+1:],
	}, nil
}
