package ports

import (
	"time"
	"transport-planner-service/internal/domain"
)

// Contract for recording the outcome of planning runs.
type PlanMetrics interface {
	RecordPlan(plan *domain.LoadPlan, dur time.Duration)
	RecordPlanError(reason string)
}
