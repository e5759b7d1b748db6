package services

import (
	"fmt"
	"slices"
	"transport-planner-service/internal/domain"
)

// PackTrucks packs one flight group's demand into capacity-bounded trucks.
//
// Items are taken largest first. Every full truckload of a destination leaves
// as its own single-stop truck; a remainder goes to the first truck, in
// creation order, with enough free space, or opens a new truck.
// This is first-fit decreasing, not an optimal packing. Driver rotation and
// display order depend on this exact order, so a smarter pass must not be
// slipped in here.
func PackTrucks(items []domain.DemandItem, capacity int) ([]*domain.Truck, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("pack trucks: %w: capacity must be positive (got %d)", ErrInvalidConfig, capacity)
	}

	queue := make([]domain.DemandItem, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			queue = append(queue, it)
		}
	}

	// Stable keeps input order among equal quantities.
	slices.SortStableFunc(queue, func(a, b domain.DemandItem) int {
		return b.Quantity - a.Quantity
	})

	trucks := make([]*domain.Truck, 0, len(queue))
	open := func(line domain.LoadLine) error {
		truck := domain.NewTruck(len(trucks)+1, capacity)
		if err := truck.Add(line); err != nil {
			return err
		}
		trucks = append(trucks, truck)
		return nil
	}

	for _, it := range queue {
		left := it.Quantity

		for left >= capacity {
			if err := open(domain.LoadLine{Destination: it.Destination, Quantity: capacity, GroupLabel: it.GroupLabel}); err != nil {
				return nil, fmt.Errorf("pack trucks: full load for %q: %w", it.Destination, err)
			}
			left -= capacity
		}
		if left == 0 {
			continue
		}

		line := domain.LoadLine{Destination: it.Destination, Quantity: left, GroupLabel: it.GroupLabel}
		placed := false
		for _, truck := range trucks {
			if truck.Free() >= left {
				if err := truck.Add(line); err != nil {
					return nil, fmt.Errorf("pack trucks: remainder for %q: %w", it.Destination, err)
				}
				placed = true
				break
			}
		}

		if !placed {
			if err := open(line); err != nil {
				return nil, fmt.Errorf("pack trucks: remainder for %q: %w", it.Destination, err)
			}
		}
	}

	return trucks, nil
}
