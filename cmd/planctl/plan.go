package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"transport-planner-service/internal/adapters/tabular"
	"transport-planner-service/internal/config"
	"transport-planner-service/internal/domain"
	"transport-planner-service/internal/export"
	"transport-planner-service/internal/platform/logger"
	"transport-planner-service/internal/services"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type planOptions struct {
	manifest     string
	drivers      string
	bags         string
	output       string
	format       string
	layout       string
	capacity     int
	origin       string
	originColumn int
	headerRow    int
}

var planOpts = planOptions{}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a truck plan from a manifest CSV and a driver roster",
	Long: `Reads the manifest and roster, packs each flight group into trucks and
assigns drivers. With --bags the bag ledger is joined to the plan by seal id
and written as CSV instead of the truck list.`,
	RunE: runPlanCmd,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planOpts.manifest, "manifest", "", "manifest CSV file")
	f.StringVar(&planOpts.drivers, "drivers", "", "driver roster CSV file")
	f.StringVar(&planOpts.bags, "bags", "", "bag ledger CSV to join by seal id")
	f.StringVarP(&planOpts.output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&planOpts.format, "format", "table", "output format: json, csv or table")
	f.StringVar(&planOpts.layout, "layout", "", "manifest layout: simple or itemized")
	f.IntVar(&planOpts.capacity, "capacity", 0, "truck capacity in items")
	f.StringVar(&planOpts.origin, "origin", "", "fixed origin station for every row")
	f.IntVar(&planOpts.originColumn, "origin-column", services.NoColumn, "read the origin station from this 0-based column")
	f.IntVar(&planOpts.headerRow, "header-row", 0, "0-based header line in the manifest CSV, -1 for none")
	_ = planCmd.MarkFlagRequired("manifest")

	rootCmd.AddCommand(planCmd)
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), "planctl", level)

	opts := planOpts
	flags := cmd.Flags()
	if !flags.Changed("header-row") {
		opts.headerRow = cfg.Planner.HeaderRow
	}
	if !flags.Changed("origin-column") {
		opts.originColumn = cfg.Planner.OriginColumn
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	ctx := log.WithContext(cmd.Context())
	return runPlan(ctx, cfg.Planner, opts, flags.Changed("origin-column"), out)
}

// runPlan applies the flag overrides to the planner settings, plans the
// manifest and writes the result to out.
func runPlan(ctx context.Context, planner config.PlannerConfig, opts planOptions, columnOrigin bool, out io.Writer) error {
	log := zerolog.Ctx(ctx)

	if opts.capacity != 0 {
		planner.TruckCapacity = opts.capacity
	}
	if opts.layout != "" {
		planner.Layout = strings.ToLower(opts.layout)
	}
	switch {
	case columnOrigin:
		planner.OriginMode = string(services.OriginColumn)
		planner.OriginColumn = opts.originColumn
	case opts.origin != "":
		planner.OriginMode = string(services.OriginFixed)
		planner.Origin = opts.origin
	}

	format := strings.ToLower(opts.format)
	switch format {
	case "json", "csv", "table":
	default:
		return fmt.Errorf("plan: unknown format %q (want json, csv or table)", opts.format)
	}

	table, err := tabular.NewCSVManifestSource(opts.manifest, opts.headerRow).LoadManifest(ctx)
	if err != nil {
		return err
	}

	var drivers []domain.Driver
	if opts.drivers != "" {
		drivers, err = tabular.NewCSVDriverRoster(opts.drivers).ListDrivers(ctx)
		if err != nil {
			return err
		}
	} else {
		log.Warn().Msg("no driver roster given, trucks get no driver")
	}

	start := time.Now()
	plan, err := services.PlanLoads(table, services.PlanLoadsRequest{
		TruckCapacity: planner.TruckCapacity,
		Normalize:     planner.NormalizeOptions(),
		Drivers:       drivers,
	})
	if err != nil {
		return err
	}

	for _, ge := range plan.GroupErrors {
		log.Warn().Err(ge.Err).Str("group", ge.Key.String()).Msg("flight group not planned")
	}
	log.Info().
		Int("rows", len(table.Rows)).
		Int("trucks", plan.Summary.TotalTrucks).
		Int("items", plan.Summary.TotalItems).
		Int("skipped_rows", plan.Summary.SkippedRows).
		Dur("took", time.Since(start)).
		Msg("plan built")

	if opts.bags != "" {
		bags, err := tabular.NewCSVBagLedger(opts.bags).ListBags(ctx)
		if err != nil {
			return err
		}
		rows := export.JoinBags(plan, bags)
		matched := 0
		for _, r := range rows {
			if r.Truck != nil {
				matched++
			}
		}
		log.Info().Int("bags", len(rows)).Int("matched", matched).Msg("bags joined")
		return export.WriteBagsCSV(out, rows)
	}

	switch format {
	case "json":
		return export.WriteJSON(out, plan)
	case "csv":
		return export.WriteCSV(out, plan)
	default:
		return export.WriteTable(out, plan)
	}
}
