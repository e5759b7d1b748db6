package services

import (
	"fmt"
	"slices"
	"strconv"
	"transport-planner-service/internal/domain"

	"github.com/google/uuid"
)

// Default truck capacity in items.
const DefaultTruckCapacity = 30

// Namespace for name-based seal ids.
var sealNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("transport-planner-service/seal"))

type PlanLoadsRequest struct {
	TruckCapacity int
	Normalize     NormalizeOptions
	Drivers       []domain.Driver
}

// Validate checks everything that can be checked before packing starts.
func (r PlanLoadsRequest) Validate(table domain.Table) error {
	if r.TruckCapacity <= 0 {
		return fmt.Errorf("%w: truck capacity must be positive (got %d)", ErrInvalidConfig, r.TruckCapacity)
	}
	return r.Normalize.Validate(table)
}

// PlanLoads turns a manifest table into a truck plan.
//
// Configuration is validated once, up front. Each flight group is packed on
// its own; a group that fails is reported in GroupErrors without stopping
// the others. Drivers rotate per station across the whole run, in output
// order, from a pool built fresh for this call.
func PlanLoads(table domain.Table, req PlanLoadsRequest) (*domain.LoadPlan, error) {
	if err := req.Validate(table); err != nil {
		return nil, fmt.Errorf("plan loads: %w", err)
	}

	pool := NewDriverPool(req.Drivers)
	opts := req.Normalize
	if opts.HasStation == nil {
		opts.HasStation = pool.HasStation
	}

	demand, stats, err := NormalizeDemand(table, opts)
	if err != nil {
		return nil, fmt.Errorf("plan loads: %w", err)
	}

	plan := &domain.LoadPlan{
		Trucks: []domain.PlannedTruck{},
		Summary: domain.PlanSummary{
			SkippedRows: stats.Dropped,
		},
	}

	flights := make(map[string]struct{})
	for _, d := range demand {
		plan.Summary.TotalItems += d.Quantity
		flights[d.Flight] = struct{}{}
	}
	plan.Summary.Flights = len(flights)

	for _, group := range GroupDemand(demand) {
		trucks, err := PackTrucks(group.Items, req.TruckCapacity)
		if err != nil {
			plan.GroupErrors = append(plan.GroupErrors, domain.GroupError{Key: group.Key, Err: err})
			continue
		}

		for i, t := range trucks {
			pt := domain.PlannedTruck{
				SealID:           SealID(group.Key, i+1),
				Origin:           group.Key.Origin,
				Country:          group.Key.Country,
				Date:             group.Key.Date,
				Time:             group.Key.Time,
				Flight:           group.Key.Flight,
				Stops:            t.Stops,
				StopsDisplay:     t.StopsDisplay(),
				Load:             t.Load,
				Items:            t.Items,
				Capacity:         t.Capacity,
				MultiDrop:        t.MultiDrop,
				DriverAssignment: pool.Assign(group.Key.Origin),
			}
			plan.Trucks = append(plan.Trucks, pt)

			if pt.MultiDrop {
				plan.Summary.MultiDropTrucks++
			}
		}
	}
	plan.Summary.TotalTrucks = len(plan.Trucks)

	return plan, nil
}

// GroupDemand buckets demand by flight group. Groups come back sorted by key;
// items keep their input order.
func GroupDemand(demand []domain.Demand) []domain.FlightGroup {
	index := make(map[domain.FlightGroupKey]int)
	groups := make([]domain.FlightGroup, 0)

	for _, d := range demand {
		k := d.Key()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, domain.FlightGroup{Key: k})
		}
		groups[i].Items = append(groups[i].Items, d.Item())
	}

	slices.SortStableFunc(groups, func(a, b domain.FlightGroup) int {
		return a.Key.Compare(b.Key)
	})
	return groups
}

// SealID derives the stable shipment id of the nth truck (1-based) of a group.
func SealID(key domain.FlightGroupKey, n int) string {
	return uuid.NewSHA1(sealNamespace, []byte(key.String()+"#"+strconv.Itoa(n))).String()
}
