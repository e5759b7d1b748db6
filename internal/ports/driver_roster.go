package ports

import (
	"context"
	"transport-planner-service/internal/domain"
)

// Port: a boundary for retrieving the driver roster.
type DriverRoster interface {
	// Return all drivers in roster order. Order decides rotation order.
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
}

// Port: the bag/seal ledger joined to planned trucks on export.
type BagLedger interface {
	ListBags(ctx context.Context) ([]domain.BagRecord, error)
}
