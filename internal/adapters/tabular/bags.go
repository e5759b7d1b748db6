package tabular

import (
	"context"
	"errors"
	"fmt"
	"io"
	"transport-planner-service/internal/domain"
)

// CSVBagLedger reads bag tag records (bag_id, seal_id, anything else).
type CSVBagLedger struct {
	Path string
}

func NewCSVBagLedger(path string) *CSVBagLedger {
	return &CSVBagLedger{Path: path}
}

func (s *CSVBagLedger) ListBags(ctx context.Context) ([]domain.BagRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := readFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("list bags: %w", err)
	}
	return bagsFromRecords(records)
}

// ReadBags parses a bag ledger CSV from r.
func ReadBags(r io.Reader) ([]domain.BagRecord, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bags: %w", err)
	}
	return bagsFromRecords(records)
}

func bagsFromRecords(records [][]string) ([]domain.BagRecord, error) {
	if len(records) == 0 {
		return []domain.BagRecord{}, nil
	}

	header := records[0]
	idx := columnIndex(header)
	bagCol, okBag := lookup(idx, "bag_id", "bag")
	sealCol, okSeal := lookup(idx, "seal_id", "seal_number", "seal")
	if !okBag || !okSeal {
		return nil, errors.New("read bags: header needs bag_id and seal_id columns")
	}

	bags := make([]domain.BagRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		b := domain.BagRecord{
			BagID:      field(rec, bagCol),
			SealID:     field(rec, sealCol),
			Attributes: map[string]string{},
		}
		for i, h := range header {
			if i == bagCol || i == sealCol {
				continue
			}
			b.Attributes[headerKey(h)] = field(rec, i)
		}
		bags = append(bags, b)
	}
	return bags, nil
}
