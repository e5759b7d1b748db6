package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"transport-planner-service/internal/api/dto"
	"transport-planner-service/internal/config"
	"transport-planner-service/internal/domain"
	"transport-planner-service/internal/export"
	"transport-planner-service/internal/ports"
	"transport-planner-service/internal/services"

	"github.com/rs/zerolog"
)

const (
	minTruckCapacity = 1
	maxTruckCapacity = 100
	maxPlanBodyBytes = 10 << 20
)

type PlanHandler struct {
	Manifest ports.ManifestSource
	Roster   ports.DriverRoster
	Metrics  ports.PlanMetrics
	Defaults config.PlannerConfig
}

// Plan loads the manifest (request rows or the repository) and the roster,
// plans trucks for every flight group and returns the plan as JSON, or as
// CSV with ?format=csv.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	log := zerolog.Ctx(r.Context())

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.reject(w, r, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.reject(w, r, "body must contain only one JSON object")
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "json" && format != "csv" {
		h.reject(w, r, "format must be json or csv")
		return
	}

	cfg := h.Defaults
	if req.TruckCapacity != 0 {
		cfg.TruckCapacity = req.TruckCapacity
	}
	if cfg.TruckCapacity < minTruckCapacity || cfg.TruckCapacity > maxTruckCapacity {
		h.reject(w, r, "truck_capacity must be between 1 and 100")
		return
	}
	if l := strings.TrimSpace(req.Layout); l != "" {
		cfg.Layout = strings.ToLower(l)
	}
	if o := strings.TrimSpace(req.Origin); o != "" {
		cfg.OriginMode = string(services.OriginFixed)
		cfg.Origin = o
	}
	if req.OriginColumn != nil {
		cfg.OriginMode = string(services.OriginColumn)
		cfg.OriginColumn = *req.OriginColumn
	}
	if m := strings.TrimSpace(req.OriginMode); m != "" {
		cfg.OriginMode = strings.ToLower(m)
	}

	var table domain.Table
	switch {
	case req.Rows != nil:
		table = domain.Table{Header: req.Header, Rows: req.Rows}
	case h.Manifest != nil:
		t, err := h.Manifest.LoadManifest(r.Context())
		if err != nil {
			h.fail(w, r, "load manifest failed", err)
			return
		}
		table = t
	default:
		h.reject(w, r, "rows are required")
		return
	}

	drivers, err := h.Roster.ListDrivers(r.Context())
	if err != nil {
		h.fail(w, r, "list drivers failed", err)
		return
	}

	start := time.Now()
	plan, err := services.PlanLoads(table, services.PlanLoadsRequest{
		TruckCapacity: cfg.TruckCapacity,
		Normalize:     cfg.NormalizeOptions(),
		Drivers:       drivers,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidConfig) || errors.Is(err, services.ErrColumnOutOfRange) {
			h.reject(w, r, err.Error())
			return
		}
		h.fail(w, r, "plan loads failed", err)
		return
	}
	h.Metrics.RecordPlan(plan, time.Since(start))

	for _, ge := range plan.GroupErrors {
		log.Warn().Err(ge.Err).Str("group", ge.Key.String()).Msg("flight group not planned")
	}
	log.Info().
		Int("trucks", plan.Summary.TotalTrucks).
		Int("items", plan.Summary.TotalItems).
		Int("skipped_rows", plan.Summary.SkippedRows).
		Msg("plan built")

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="plan.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := export.WriteCSV(w, plan); err != nil {
			log.Error().Err(err).Msg("write csv failed")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan))
}

func (h *PlanHandler) reject(w http.ResponseWriter, r *http.Request, msg string) {
	h.Metrics.RecordPlanError("rejected")
	writeError(w, r, http.StatusBadRequest, msg)
}

func (h *PlanHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	h.Metrics.RecordPlanError("error")
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func planResponse(plan *domain.LoadPlan) dto.PlanResponse {
	res := dto.PlanResponse{
		Trucks:      make([]dto.TruckResponse, 0, len(plan.Trucks)),
		GroupErrors: make([]dto.GroupErrorResponse, 0, len(plan.GroupErrors)),
		Summary: dto.SummaryResponse{
			TotalItems:      plan.Summary.TotalItems,
			TotalTrucks:     plan.Summary.TotalTrucks,
			MultiDropTrucks: plan.Summary.MultiDropTrucks,
			Flights:         plan.Summary.Flights,
			SkippedRows:     plan.Summary.SkippedRows,
		},
	}

	for _, t := range plan.Trucks {
		load := make([]dto.LoadLineResponse, 0, len(t.Load))
		for _, l := range t.Load {
			load = append(load, dto.LoadLineResponse{
				Destination: l.Destination,
				Quantity:    l.Quantity,
				GroupLabel:  l.GroupLabel,
			})
		}

		res.Trucks = append(res.Trucks, dto.TruckResponse{
			SealID:    t.SealID,
			Origin:    t.Origin,
			Date:      t.Date,
			Time:      t.Time,
			Flight:    t.Flight,
			Country:   t.Country,
			Stops:     t.Stops,
			Load:      load,
			Items:     t.Items,
			Capacity:  t.Capacity,
			MultiDrop: t.MultiDrop,
			CarPlate:  t.CarPlate,
			Driver:    t.Driver,
			Phone:     t.Phone,
		})
	}

	for _, ge := range plan.GroupErrors {
		res.GroupErrors = append(res.GroupErrors, dto.GroupErrorResponse{
			Origin:  ge.Key.Origin,
			Country: ge.Key.Country,
			Date:    ge.Key.Date,
			Time:    ge.Key.Time,
			Flight:  ge.Key.Flight,
			Error:   ge.Err.Error(),
		})
	}

	return res
}
