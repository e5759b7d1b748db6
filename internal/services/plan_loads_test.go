package services

import (
	"testing"
	"transport-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleRequest(capacity int, drivers []domain.Driver) PlanLoadsRequest {
	return PlanLoadsRequest{
		TruckCapacity: capacity,
		Normalize: NormalizeOptions{
			Layout: LayoutSimple,
			Origin: OriginOptions{Mode: OriginFixed, Fixed: "BKK"},
		},
		Drivers: drivers,
	}
}

func TestPlanLoadsGroupsAndAssignsDrivers(t *testing.T) {
	table := domain.Table{Rows: [][]string{
		simpleRow("Korea", "2026-01-20", "KE 651", "09:00", "Amari", "65"),
		simpleRow("Japan", "2026-01-20", "JL 31", "08:00", "Amari", "20"),
		simpleRow("Japan", "2026-01-20", "JL 31", "08:00", "Centara", "8"),
		simpleRow("Japan", "2026-01-20", "JL 31", "08:00", "Pullman", "0"),
		simpleRow("Japan", "2026-01-20", "", "08:00", "Pullman", "9"),
	}}
	drivers := []domain.Driver{
		{LicensePlate: "B1", Name: "Somchai", Phone: "081", Station: "BKK"},
		{LicensePlate: "B2", Name: "Anong", Phone: "082", Station: "BKK"},
	}

	plan, err := PlanLoads(table, simpleRequest(30, drivers))
	require.NoError(t, err)
	require.Empty(t, plan.GroupErrors)
	require.Len(t, plan.Trucks, 4)

	// Japan sorts before Korea, so JL 31 is planned first.
	first := plan.Trucks[0]
	assert.Equal(t, "JL 31", first.Flight)
	assert.Equal(t, "Japan", first.Country)
	assert.Equal(t, "BKK", first.Origin)
	assert.Equal(t, 28, first.Items)
	assert.True(t, first.MultiDrop)
	assert.Equal(t, "Amari, Centara", first.StopsDisplay)
	assert.Equal(t, "B1", first.CarPlate)

	var items []int
	var plates []string
	for _, tr := range plan.Trucks[1:] {
		assert.Equal(t, "KE 651", tr.Flight)
		assert.False(t, tr.MultiDrop)
		items = append(items, tr.Items)
		plates = append(plates, tr.CarPlate)
	}
	assert.Equal(t, []int{30, 30, 5}, items)
	assert.Equal(t, []string{"B2", "B1", "B2"}, plates, "cursor carries across flight groups")

	assert.Equal(t, domain.PlanSummary{
		TotalItems:      93,
		TotalTrucks:     4,
		MultiDropTrucks: 1,
		Flights:         2,
		SkippedRows:     1,
	}, plan.Summary)
}

func TestPlanLoadsConservesPerGroup(t *testing.T) {
	table := domain.Table{Rows: [][]string{
		simpleRow("A", "d1", "F1", "t", "H1", "17"),
		simpleRow("A", "d1", "F1", "t", "H2", "44"),
		simpleRow("A", "d1", "F1", "t", "H3", "9"),
		simpleRow("B", "d1", "F1", "t", "H1", "3"),
		simpleRow("A", "d2", "F1", "t", "H1", "12"),
	}}

	plan, err := PlanLoads(table, simpleRequest(25, nil))
	require.NoError(t, err)

	perGroup := map[string]int{}
	for _, tr := range plan.Trucks {
		assert.LessOrEqual(t, tr.Items, 25)
		assert.Positive(t, tr.Items)
		assert.Equal(t, domain.NoDriver, tr.DriverAssignment)
		perGroup[tr.Country+"/"+tr.Date] += tr.Items
	}
	assert.Equal(t, map[string]int{"A/d1": 70, "B/d1": 3, "A/d2": 12}, perGroup)
}

func TestPlanLoadsDeterministic(t *testing.T) {
	table := domain.Table{Rows: [][]string{
		simpleRow("A", "d", "F1", "t", "H1", "41"),
		simpleRow("A", "d", "F1", "t", "H2", "13"),
		simpleRow("A", "d", "F2", "t", "H1", "7"),
	}}
	drivers := []domain.Driver{{LicensePlate: "X"}, {LicensePlate: "Y"}}

	a, err := PlanLoads(table, simpleRequest(30, drivers))
	require.NoError(t, err)
	b, err := PlanLoads(table, simpleRequest(30, drivers))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	seen := map[string]bool{}
	for _, tr := range a.Trucks {
		assert.False(t, seen[tr.SealID], "seal ids are unique")
		seen[tr.SealID] = true
	}
}

func TestPlanLoadsConfigErrors(t *testing.T) {
	table := domain.Table{Rows: [][]string{simpleRow("A", "d", "F1", "t", "H1", "4")}}

	_, err := PlanLoads(table, simpleRequest(0, nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	req := simpleRequest(30, nil)
	req.Normalize.Layout = LayoutItemized
	_, err = PlanLoads(table, req)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
}

func TestPlanLoadsEmpty(t *testing.T) {
	plan, err := PlanLoads(domain.Table{}, simpleRequest(30, nil))
	require.NoError(t, err)
	assert.Empty(t, plan.Trucks)
	assert.NotNil(t, plan.Trucks)
	assert.Equal(t, domain.PlanSummary{}, plan.Summary)
}

func TestPlanLoadsOriginColumnUsesRunPool(t *testing.T) {
	cols := DefaultColumns(LayoutSimple)
	table := domain.Table{Rows: [][]string{
		append(simpleRow("A", "d", "F1", "t", "H1", "4"), "U-Tapao"),
		append(simpleRow("A", "d", "F2", "t", "H1", "4"), "Don Mueang DMK"),
	}}
	req := PlanLoadsRequest{
		TruckCapacity: 30,
		Normalize: NormalizeOptions{
			Layout:  LayoutSimple,
			Columns: &cols,
			Origin:  OriginOptions{Mode: OriginColumn, Column: 6},
		},
		Drivers: []domain.Driver{
			{LicensePlate: "U1", Station: "u-tapao"},
			{LicensePlate: "ANY1"},
		},
	}

	plan, err := PlanLoads(table, req)
	require.NoError(t, err)
	require.Len(t, plan.Trucks, 2)

	byFlight := map[string]domain.PlannedTruck{}
	for _, tr := range plan.Trucks {
		byFlight[tr.Flight] = tr
	}
	assert.Equal(t, "U-TAPAO", byFlight["F1"].Origin)
	assert.Equal(t, "U1", byFlight["F1"].CarPlate)
	assert.Equal(t, "DMK", byFlight["F2"].Origin)
	assert.Equal(t, "ANY1", byFlight["F2"].CarPlate)
}

func TestGroupDemandSortsKeys(t *testing.T) {
	demand := []domain.Demand{
		{Origin: "DMK", Flight: "A1", Destination: "x", Quantity: 1},
		{Origin: "BKK", Flight: "Z9", Destination: "y", Quantity: 2},
		{Origin: "DMK", Flight: "A1", Destination: "z", Quantity: 3},
	}

	groups := GroupDemand(demand)
	require.Len(t, groups, 2)
	assert.Equal(t, "BKK", groups[0].Key.Origin)
	assert.Equal(t, []domain.DemandItem{
		{Destination: "x", Quantity: 1},
		{Destination: "z", Quantity: 3},
	}, groups[1].Items)
}

func TestSealIDStable(t *testing.T) {
	k := domain.FlightGroupKey{Origin: "BKK", Country: "JPN", Date: "2026-01-20", Time: "08:00", Flight: "JL31"}
	assert.Equal(t, SealID(k, 1), SealID(k, 1))
	assert.NotEqual(t, SealID(k, 1), SealID(k, 2))
	assert.Len(t, SealID(k, 1), 36)
}
