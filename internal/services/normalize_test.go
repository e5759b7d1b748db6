package services

import (
	"testing"
	"transport-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// itemizedRow lays out cells the way the standard itemized workbook does.
func itemizedRow(date, flight, timing, group, wcMan, wcElec, luggage, sport, dest string) []string {
	r := make([]string, 17)
	r[2], r[3], r[4], r[9] = date, flight, timing, group
	r[11], r[12], r[13], r[14] = wcMan, wcElec, luggage, sport
	r[16] = dest
	return r
}

func simpleRow(country, date, flight, timing, hotel, qty string) []string {
	return []string{country, date, flight, timing, hotel, qty}
}

func TestNormalizeItemized(t *testing.T) {
	table := domain.Table{Rows: [][]string{
		itemizedRow("ARRIVAL", "FLIGHT", "TIMING", "NPC", "Manual", "Battery", "Personal", "Sport", "Hotel"),
		itemizedRow("2026-01-20", "TG 641", "08:30", "JPN", "1", "-", "12", "3.0", " Amari "),
		itemizedRow("2026-01-20", "TG 641", "08:30", "KOR", "", "2", "abc", "4", "#N/A"),
		itemizedRow("2026-01-20", "", "09:00", "CHN", "1", "1", "1", "1", "Amari"),
		itemizedRow("2026-01-20", "CA 959", "nan", "CHN", "1", "1", "1", "1", "Amari"),
		itemizedRow("2026-01-21", "CA 959", "10:15", "", "-1", "0", "7", "0", "Novotel"),
	}}

	demand, stats, err := NormalizeDemand(table, NormalizeOptions{
		Layout: LayoutItemized,
		Origin: OriginOptions{Mode: OriginFixed, Fixed: "BKK"},
	})
	require.NoError(t, err)

	assert.Equal(t, NormalizeStats{Rows: 6, Skipped: 1, Dropped: 2, Kept: 3}, stats)
	require.Len(t, demand, 3)

	assert.Equal(t, domain.Demand{
		Date: "2026-01-20", Time: "08:30", Flight: "TG 641", Country: "JPN",
		Origin: "BKK", Destination: "Amari", GroupLabel: "JPN", Quantity: 16,
	}, demand[0])

	assert.Equal(t, domain.OtherDestination, demand[1].Destination)
	assert.Equal(t, 6, demand[1].Quantity, "junk and blank counts coerce to zero")

	assert.Equal(t, 7, demand[2].Quantity, "negative counts coerce to zero")
	assert.Equal(t, domain.NoGroupLabel, demand[2].GroupLabel)
}

func TestNormalizeSimple(t *testing.T) {
	table := domain.Table{
		Header: []string{"Country", "Date", "Flight", "Time", "Hotel", "Qty"},
		Rows: [][]string{
			simpleRow("Japan", "2026-01-20", "JL 31", "08:00", "Amari", "20"),
			simpleRow("Japan", "2026-01-20", "JL 31", "", "Centara", "8"),
			simpleRow("Korea", "2026-01-20", "KE 651", "09:00", "nan", "-"),
			simpleRow("Korea", "2026-01-20", "KE 651", "09:00", "Amari", ""),
			simpleRow("Korea", "2026-01-20", "", "09:00", "Amari", "5"),
		},
	}

	demand, stats, err := NormalizeDemand(table, NormalizeOptions{
		Layout: LayoutSimple,
		Origin: OriginOptions{Mode: OriginFixed, Fixed: "DMK"},
	})
	require.NoError(t, err)
	assert.Equal(t, NormalizeStats{Rows: 5, Dropped: 2, Kept: 3}, stats)
	require.Len(t, demand, 3)

	assert.Equal(t, "Japan", demand[0].Country)
	assert.Equal(t, domain.NoGroupLabel, demand[0].GroupLabel)
	assert.Equal(t, 20, demand[0].Quantity)
	assert.Equal(t, "", demand[1].Time, "simple layout keeps rows without a time")
	assert.Equal(t, domain.OtherDestination, demand[2].Destination)
	assert.Equal(t, 0, demand[2].Quantity)
}

func TestNormalizeOriginFromColumn(t *testing.T) {
	cols := DefaultColumns(LayoutSimple)
	table := domain.Table{Rows: [][]string{
		append(simpleRow("TH", "d", "F1", "t", "H", "1"), "Suvarnabhumi (BKK)"),
		append(simpleRow("TH", "d", "F2", "t", "H", "1"), "dmk terminal 1"),
		append(simpleRow("TH", "d", "F3", "t", "H", "1"), " utapao "),
		append(simpleRow("TH", "d", "F4", "t", "H", "1"), "Chiang Mai"),
		append(simpleRow("TH", "d", "F5", "t", "H", "1"), ""),
	}}

	demand, _, err := NormalizeDemand(table, NormalizeOptions{
		Layout:  LayoutSimple,
		Columns: &cols,
		Origin:  OriginOptions{Mode: OriginColumn, Column: 6},
		HasStation: func(s string) bool {
			return s == "UTAPAO"
		},
	})
	require.NoError(t, err)

	var origins []string
	for _, d := range demand {
		origins = append(origins, d.Origin)
	}
	assert.Equal(t, []string{"BKK", "DMK", "UTAPAO", domain.AnyStation, domain.AnyStation}, origins)
}

func TestNormalizeValidation(t *testing.T) {
	table := domain.Table{Rows: [][]string{simpleRow("TH", "d", "F", "t", "H", "1")}}

	_, _, err := NormalizeDemand(table, NormalizeOptions{Layout: LayoutItemized, Origin: OriginOptions{Mode: OriginFixed}})
	require.ErrorIs(t, err, ErrColumnOutOfRange)
	assert.Contains(t, err.Error(), "table has 6 columns")

	_, _, err = NormalizeDemand(table, NormalizeOptions{Layout: LayoutSimple, Origin: OriginOptions{Mode: OriginColumn, Column: 6}})
	assert.ErrorIs(t, err, ErrColumnOutOfRange)

	_, _, err = NormalizeDemand(table, NormalizeOptions{Layout: "pivot", Origin: OriginOptions{Mode: OriginFixed}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, _, err = NormalizeDemand(table, NormalizeOptions{Layout: LayoutSimple, Origin: OriginOptions{Mode: "guess"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cols := DefaultColumns(LayoutSimple)
	cols.Quantity = NoColumn
	_, _, err = NormalizeDemand(table, NormalizeOptions{Layout: LayoutSimple, Columns: &cols, Origin: OriginOptions{Mode: OriginFixed}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	demand, stats, err := NormalizeDemand(domain.Table{}, NormalizeOptions{Layout: LayoutItemized, Origin: OriginOptions{Mode: OriginFixed}})
	require.NoError(t, err)
	assert.Empty(t, demand)
	assert.Zero(t, stats.Rows)
}

func TestCoerceCount(t *testing.T) {
	cases := map[string]float64{
		"":      0,
		"-":     0,
		" 12 ":  12,
		"2.5":   2.5,
		"nan":   0,
		"inf":   0,
		"1,200": 0,
		"-4":    0,
		"x":     0,
	}
	for in, want := range cases {
		assert.Equal(t, want, coerceCount(in), "input %q", in)
	}
}
