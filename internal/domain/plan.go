package domain

// PlannedTruck is the record handed to reporting and export consumers.
type PlannedTruck struct {
	SealID       string
	Origin       string
	Country      string
	Date         string
	Time         string
	Flight       string
	Stops        []string
	StopsDisplay string
	Load         []LoadLine
	Items        int
	Capacity     int
	MultiDrop    bool
	DriverAssignment
}

// Aggregate figures over one planning run.
type PlanSummary struct {
	TotalItems      int
	TotalTrucks     int
	MultiDropTrucks int
	Flights         int
	SkippedRows     int
}

// GroupError records a flight group that could not be planned.
type GroupError struct {
	Key FlightGroupKey
	Err error
}

func (e GroupError) Error() string { return e.Key.String() + ": " + e.Err.Error() }

func (e GroupError) Unwrap() error { return e.Err }

// LoadPlan is the complete result of one planning run.
// Trucks are ordered by flight group key, then packing order.
type LoadPlan struct {
	Trucks      []PlannedTruck
	Summary     PlanSummary
	GroupErrors []GroupError
}

// BagRecord is one row of the bag/seal ledger.
type BagRecord struct {
	BagID      string
	SealID     string
	Attributes map[string]string
}
