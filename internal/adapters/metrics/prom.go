package metrics

import (
	"errors"
	"strconv"
	"time"
	"transport-planner-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	trucks   *prometheus.CounterVec
	items    *prometheus.CounterVec
	skipped  prometheus.Counter
	duration prometheus.Histogram
}

// NewPromSink registers planner metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Planning runs by outcome",
	}, []string{"outcome"})
	trucks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_trucks_total",
		Help: "Trucks planned by origin station and drop type",
	}, []string{"origin", "multi_drop"})
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_items_total",
		Help: "Items loaded onto planned trucks by origin station",
	}, []string{"origin"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_skipped_rows_total",
		Help: "Manifest rows dropped for missing flight, time or quantity",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_run_duration_seconds",
		Help:    "Wall time of a planning run",
		Buckets: prometheus.DefBuckets,
	})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if trucks, err = register(reg, trucks); err != nil {
		return nil, err
	}
	if items, err = register(reg, items); err != nil {
		return nil, err
	}
	if skipped, err = register(reg, skipped); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &PromSink{plans: plans, trucks: trucks, items: items, skipped: skipped, duration: duration}, nil
}

// register returns the already registered collector when one exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan counts a successful run and its trucks.
func (s *PromSink) RecordPlan(plan *domain.LoadPlan, dur time.Duration) {
	outcome := "ok"
	if len(plan.GroupErrors) > 0 {
		outcome = "partial"
	}
	s.plans.WithLabelValues(outcome).Inc()
	s.duration.Observe(dur.Seconds())
	s.skipped.Add(float64(plan.Summary.SkippedRows))

	for _, t := range plan.Trucks {
		s.trucks.WithLabelValues(t.Origin, strconv.FormatBool(t.MultiDrop)).Inc()
		s.items.WithLabelValues(t.Origin).Add(float64(t.Items))
	}
}

// RecordPlanError counts a run rejected before planning.
func (s *PromSink) RecordPlanError(reason string) {
	s.plans.WithLabelValues(reason).Inc()
}

// NopSink discards all metrics.
type NopSink struct{}

func (NopSink) RecordPlan(*domain.LoadPlan, time.Duration) {}

func (NopSink) RecordPlanError(string) {}
