// Package cmd - analyze command
package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tollsweep/adapters/sumo"
	"tollsweep/core/kpi"
	"tollsweep/core/output"
	"tollsweep/core/sweep"
	"tollsweep/internal/config"
	"tollsweep/internal/logging"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [scenarios-dir]",
	Short: "Aggregate KPIs from existing simulator outputs",
	Long: `Scan a scenarios directory for tripinfo files left by earlier runs
and fold them into KPI rows without re-running the simulator.

Examples:
  tollsweep analyze
  tollsweep analyze ./scenarios
  tollsweep analyze --format markdown ./scenarios`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, csv, markdown, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	startTime := time.Now()

	dir := cfg.Simulation.ScenariosDir
	if len(args) > 0 {
		dir = args[0]
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("scenarios directory does not exist: %s", dir)
	}

	found, err := sumo.DiscoverTripinfos(dir)
	if err != nil {
		return err
	}
	logging.Info("Discovered tripinfo files", zap.String("dir", dir), zap.Int("count", len(found)))

	report := &sweep.Report{
		RunID:     uuid.NewString(),
		Requested: len(found),
		Targets:   make(map[string]float64),
	}

	for toll, path := range found {
		src, err := sumo.OpenTripinfo(path)
		if err != nil {
			report.Skipped = append(report.Skipped, sweep.Skipped{Toll: toll, Reason: err.Error()})
			continue
		}
		totals, err := kpi.Aggregate(src)
		src.Close()
		if err != nil {
			logging.Warn("Malformed tripinfo, reporting zeroed KPIs", zap.String("toll", toll.String()), zap.Error(err))
		}
		report.Results = append(report.Results, kpi.Compute(toll, cfg.Economics.GridCostPerKWh, totals))
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Toll < report.Results[j].Toll
	})
	sort.Slice(report.Skipped, func(i, j int) bool {
		return report.Skipped[i].Toll < report.Skipped[j].Toll
	})
	report.Duration = time.Since(startTime)

	formatter, err := output.New(resolveFormat(cfg))
	if err != nil {
		return err
	}
	return formatter.RenderSweep(os.Stdout, report)
}
