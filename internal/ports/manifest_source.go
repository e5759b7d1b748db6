package ports

import (
	"context"
	"transport-planner-service/internal/domain"
)

// Port: a boundary for reading manifest rows from a tabular data source.
type ManifestSource interface {
	// Return the whole manifest as positional cells.
	LoadManifest(ctx context.Context) (domain.Table, error)
}
