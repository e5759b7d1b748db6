package domain

import "strings"

// Destination used for blank or placeholder hotel values.
const OtherDestination = "Other"

// Group label used when a row carries none.
const NoGroupLabel = "-"

// Demand is one normalized manifest row.
type Demand struct {
	Date        string
	Time        string
	Flight      string
	Country     string
	Origin      string
	Destination string
	GroupLabel  string
	Quantity    int
}

// Key returns the flight group this row belongs to.
func (d Demand) Key() FlightGroupKey {
	return FlightGroupKey{
		Origin:  d.Origin,
		Country: d.Country,
		Date:    d.Date,
		Time:    d.Time,
		Flight:  d.Flight,
	}
}

// Item returns the packing view of the row.
func (d Demand) Item() DemandItem {
	return DemandItem{
		Destination: d.Destination,
		Quantity:    d.Quantity,
		GroupLabel:  d.GroupLabel,
	}
}

// DemandItem is one destination's requirement within a flight group.
type DemandItem struct {
	Destination string
	Quantity    int
	GroupLabel  string
}

// Represents the batch of demand that is packed independently of all others.
type FlightGroupKey struct {
	Origin  string
	Country string
	Date    string
	Time    string
	Flight  string
}

// Compare orders keys field by field: origin, country, date, time, flight.
func (k FlightGroupKey) Compare(o FlightGroupKey) int {
	for _, p := range [][2]string{
		{k.Origin, o.Origin},
		{k.Country, o.Country},
		{k.Date, o.Date},
		{k.Time, o.Time},
		{k.Flight, o.Flight},
	} {
		if c := strings.Compare(p[0], p[1]); c != 0 {
			return c
		}
	}
	return 0
}

// String is the canonical "|" joined form used for seal ids and logs.
func (k FlightGroupKey) String() string {
	return strings.Join([]string{k.Origin, k.Country, k.Date, k.Time, k.Flight}, "|")
}

// FlightGroup is a key plus the items planned under it, in input order.
type FlightGroup struct {
	Key   FlightGroupKey
	Items []DemandItem
}

var placeholderDestinations = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"nat":  {},
	"#n/a": {},
}

// NormalizeDestination trims a raw hotel value and folds placeholders
// ("nan", "none", "nat", "#n/a", blank) into OtherDestination.
func NormalizeDestination(raw string) string {
	if IsBlank(raw) {
		return OtherDestination
	}
	return strings.TrimSpace(raw)
}

// IsBlank reports whether a cell holds no usable value: empty after trimming,
// or one of the placeholder tokens spreadsheet exports write for missing data.
func IsBlank(raw string) bool {
	_, ok := placeholderDestinations[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
