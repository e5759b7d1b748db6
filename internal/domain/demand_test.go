package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDestination(t *testing.T) {
	cases := map[string]string{
		"  Hotel A ": "Hotel A",
		"":           OtherDestination,
		"   ":        OtherDestination,
		"nan":        OtherDestination,
		"NaN":        OtherDestination,
		"None":       OtherDestination,
		"NaT":        OtherDestination,
		"#N/A":       OtherDestination,
		" #n/a ":     OtherDestination,
		"Nana Hotel": "Nana Hotel",
		"N/A":        "N/A",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDestination(in), "input %q", in)
	}
}

func TestFlightGroupKeyCompare(t *testing.T) {
	a := FlightGroupKey{Origin: "BKK", Country: "JPN", Date: "2026-01-20", Time: "08:00", Flight: "JL31"}
	b := a
	assert.Equal(t, 0, a.Compare(b))

	b.Flight = "JL33"
	assert.Negative(t, a.Compare(b))

	b = a
	b.Origin = "DMK"
	b.Flight = "AA00"
	assert.Negative(t, a.Compare(b), "origin dominates later fields")

	assert.Equal(t, "BKK|JPN|2026-01-20|08:00|JL31", a.String())
}

func TestTableWidthAndCell(t *testing.T) {
	tbl := Table{Rows: [][]string{{"a", "b"}, {"c", "d", "e"}}}
	assert.Equal(t, 3, tbl.Width())
	assert.Equal(t, "", tbl.Cell(0, 2))
	assert.Equal(t, "e", tbl.Cell(1, 2))
	assert.Equal(t, "", tbl.Cell(5, 0))

	tbl.Header = []string{"x", "y", "z", "w"}
	assert.Equal(t, 4, tbl.Width())
}
