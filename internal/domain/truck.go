package domain

import (
	"fmt"
	"slices"
	"strings"
)

// One itemized pickup carried by a truck.
type LoadLine struct {
	Destination string
	Quantity    int
	GroupLabel  string
}

// Capacity-bounded truck holding the load of a single flight group.
// MultiDrop is derived from Stops on every change and never set directly.
type Truck struct {
	TruckID   int
	Capacity  int
	Stops     []string
	Load      []LoadLine
	Items     int
	MultiDrop bool
}

func NewTruck(id int, capacity int) *Truck {
	return &Truck{
		TruckID:  id,
		Capacity: capacity,
	}
}

// Free returns the remaining capacity.
func (t *Truck) Free() int { return t.Capacity - t.Items }

// Add loads qty units for a destination onto the truck.
func (t *Truck) Add(line LoadLine) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("load truck: truck %d: quantity must be positive (got %d)", t.TruckID, line.Quantity)
	}
	if line.Quantity > t.Free() {
		return fmt.Errorf(
			"load truck: truck %d has %d free of capacity %d, cannot take %d",
			t.TruckID, t.Free(), t.Capacity, line.Quantity,
		)
	}

	t.Load = append(t.Load, line)
	t.Items += line.Quantity
	if !slices.Contains(t.Stops, line.Destination) {
		t.Stops = append(t.Stops, line.Destination)
	}
	t.MultiDrop = len(t.Stops) > 1
	return nil
}

// StopsDisplay returns the stops sorted and joined for display.
func (t *Truck) StopsDisplay() string {
	stops := slices.Clone(t.Stops)
	slices.Sort(stops)
	return strings.Join(stops, ", ")
}
