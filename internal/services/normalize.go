package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"transport-planner-service/internal/domain"
)

// Layout names the shape of the manifest rows.
type Layout string

const (
	// Equipment counts split into luggage, sport equipment and wheelchairs.
	LayoutItemized Layout = "itemized"
	// A single pre-aggregated quantity column.
	LayoutSimple Layout = "simple"
)

// OriginMode selects where a row's origin station comes from.
type OriginMode string

const (
	OriginFixed  OriginMode = "fixed"
	OriginColumn OriginMode = "column"
)

// Marks a column that the layout does not provide.
const NoColumn = -1

// ColumnMap holds 0-based column indexes for one layout.
// SkipRows data rows directly under the header are ignored.
type ColumnMap struct {
	SkipRows          int `json:"skip_rows"`
	Date              int `json:"date"`
	Time              int `json:"time"`
	Flight            int `json:"flight"`
	Country           int `json:"country"`
	Group             int `json:"group"`
	Destination       int `json:"destination"`
	Quantity          int `json:"quantity"`
	Luggage           int `json:"luggage"`
	Sport             int `json:"sport"`
	WheelchairManual  int `json:"wheelchair_manual"`
	WheelchairPowered int `json:"wheelchair_powered"`
}

// DefaultColumns returns the column map of the standard workbook for a layout.
func DefaultColumns(layout Layout) ColumnMap {
	if layout == LayoutItemized {
		return ColumnMap{
			SkipRows:          1,
			Date:              2,
			Flight:            3,
			Time:              4,
			Country:           9,
			Group:             9,
			WheelchairManual:  11,
			WheelchairPowered: 12,
			Luggage:           13,
			Sport:             14,
			Destination:       16,
			Quantity:          NoColumn,
		}
	}

	return ColumnMap{
		Country:           0,
		Date:              1,
		Flight:            2,
		Time:              3,
		Destination:       4,
		Quantity:          5,
		Group:             NoColumn,
		Luggage:           NoColumn,
		Sport:             NoColumn,
		WheelchairManual:  NoColumn,
		WheelchairPowered: NoColumn,
	}
}

type columnRef struct {
	name     string
	index    int
	required bool
}

func (c ColumnMap) refs(layout Layout) []columnRef {
	refs := []columnRef{
		{"date", c.Date, true},
		{"time", c.Time, true},
		{"flight", c.Flight, true},
		{"destination", c.Destination, true},
		{"country", c.Country, false},
		{"group", c.Group, false},
	}
	if layout == LayoutItemized {
		return append(refs,
			columnRef{"luggage", c.Luggage, true},
			columnRef{"sport", c.Sport, true},
			columnRef{"wheelchair_manual", c.WheelchairManual, true},
			columnRef{"wheelchair_powered", c.WheelchairPowered, true},
		)
	}
	return append(refs, columnRef{"quantity", c.Quantity, true})
}

// Stations matched by substring when origins are read from a column.
var DefaultKnownStations = []string{"BKK", "DMK"}

type OriginOptions struct {
	Mode          OriginMode
	Fixed         string
	Column        int
	KnownStations []string
}

// NormalizeOptions describes how raw manifest rows map onto demand.
type NormalizeOptions struct {
	Layout Layout
	// Nil selects DefaultColumns(Layout).
	Columns *ColumnMap
	Origin  OriginOptions
	// HasStation reports whether the driver roster has a pool for a station key.
	HasStation func(station string) bool
}

func (o NormalizeOptions) columns() ColumnMap {
	if o.Columns != nil {
		return *o.Columns
	}
	return DefaultColumns(o.Layout)
}

// Validate checks the options against the table before any row is read.
// Range checks are skipped for a table without rows.
func (o NormalizeOptions) Validate(table domain.Table) error {
	switch o.Layout {
	case LayoutItemized, LayoutSimple:
	default:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, o.Layout)
	}

	cols := o.columns()
	if cols.SkipRows < 0 {
		return fmt.Errorf("%w: skip_rows must not be negative (got %d)", ErrInvalidConfig, cols.SkipRows)
	}

	refs := cols.refs(o.Layout)
	switch o.Origin.Mode {
	case OriginFixed:
	case OriginColumn:
		refs = append(refs, columnRef{"origin", o.Origin.Column, true})
	default:
		return fmt.Errorf("%w: unknown origin mode %q", ErrInvalidConfig, o.Origin.Mode)
	}

	width := table.Width()
	for _, r := range refs {
		if r.index < NoColumn || (r.required && r.index == NoColumn) {
			return fmt.Errorf("%w: %s column index %d", ErrInvalidConfig, r.name, r.index)
		}
		if len(table.Rows) > 0 && r.index >= width {
			return fmt.Errorf(
				"%w: %s column index %d, table has %d columns",
				ErrColumnOutOfRange, r.name, r.index, width,
			)
		}
	}

	return nil
}

// NormalizeStats counts what happened to the input rows.
type NormalizeStats struct {
	Rows    int
	Skipped int
	Dropped int
	Kept    int
}

// NormalizeDemand converts manifest rows into uniform demand records.
//
// Rows without a flight, and rows without a time (itemized) or quantity
// (simple), are dropped. Numeric cells never fail: anything unparseable
// counts as zero.
func NormalizeDemand(table domain.Table, opts NormalizeOptions) ([]domain.Demand, NormalizeStats, error) {
	if err := opts.Validate(table); err != nil {
		return nil, NormalizeStats{}, fmt.Errorf("normalize demand: %w", err)
	}

	cols := opts.columns()
	stats := NormalizeStats{Rows: len(table.Rows)}
	out := make([]domain.Demand, 0, len(table.Rows))

	for i := range table.Rows {
		if i < cols.SkipRows {
			stats.Skipped++
			continue
		}

		cell := func(col int) string {
			if col == NoColumn {
				return ""
			}
			return strings.TrimSpace(table.Cell(i, col))
		}

		flight := cell(cols.Flight)
		timing := cell(cols.Time)
		if domain.IsBlank(flight) {
			stats.Dropped++
			continue
		}

		var qty float64
		switch opts.Layout {
		case LayoutItemized:
			if domain.IsBlank(timing) {
				stats.Dropped++
				continue
			}
			qty = coerceCount(cell(cols.Luggage)) +
				coerceCount(cell(cols.Sport)) +
				coerceCount(cell(cols.WheelchairManual)) +
				coerceCount(cell(cols.WheelchairPowered))
		case LayoutSimple:
			raw := cell(cols.Quantity)
			if domain.IsBlank(raw) {
				stats.Dropped++
				continue
			}
			qty = coerceCount(raw)
		}

		group := domain.NoGroupLabel
		if g := cell(cols.Group); !domain.IsBlank(g) {
			group = g
		}

		out = append(out, domain.Demand{
			Date:        cell(cols.Date),
			Time:        timing,
			Flight:      flight,
			Country:     cell(cols.Country),
			Origin:      opts.resolveOrigin(cell(opts.Origin.Column)),
			Destination: domain.NormalizeDestination(cell(cols.Destination)),
			GroupLabel:  group,
			Quantity:    int(math.Round(qty)),
		})
		stats.Kept++
	}

	return out, stats, nil
}

// resolveOrigin maps a raw origin cell onto a driver pool station key.
func (o NormalizeOptions) resolveOrigin(raw string) string {
	if o.Origin.Mode == OriginFixed {
		if f := strings.TrimSpace(o.Origin.Fixed); f != "" {
			return f
		}
		return domain.AnyStation
	}

	v := strings.ToUpper(strings.TrimSpace(raw))
	known := o.Origin.KnownStations
	if known == nil {
		known = DefaultKnownStations
	}
	for _, st := range known {
		if st != "" && strings.Contains(v, strings.ToUpper(st)) {
			return strings.ToUpper(st)
		}
	}

	if v != "" && o.HasStation != nil && o.HasStation(v) {
		return v
	}
	return domain.AnyStation
}

// coerceCount parses a count cell; placeholders, junk and negatives are 0.
func coerceCount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
