// Package cmd - sweep command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tollsweep/adapters/sumo"
	"tollsweep/adapters/sweephcl"
	"tollsweep/core/demand"
	"tollsweep/core/network"
	"tollsweep/core/output"
	"tollsweep/core/sweep"
	"tollsweep/internal/config"
	"tollsweep/internal/logging"
)

var (
	outputFormat string
	demandFile   string
	writeReport  bool
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep [spec.hcl]",
	Short: "Run a toll price sweep through the simulator",
	Long: `Run the full pipeline for every toll price in the spec file:
derive the EV adoption share, synthesize a labeled fleet, run the
simulator, and aggregate the per-trip output into KPI rows.

Examples:
  tollsweep sweep sweep.hcl
  tollsweep sweep --format csv sweep.hcl
  tollsweep sweep --demand demand.yml --report sweep.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, csv, markdown, json)")
	sweepCmd.Flags().StringVarP(&demandFile, "demand", "d", "", "demand profile file (YAML)")
	sweepCmd.Flags().BoolVar(&writeReport, "report", false, "also write the report and table files from the config")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	file, err := sweephcl.Load(args[0])
	if err != nil {
		return err
	}
	spec := file.Spec(cfg)

	edges, err := network.LoadEdges(spec.NetworkFile)
	if err != nil {
		return err
	}
	logging.Info("Loaded network", zap.String("file", spec.NetworkFile), zap.Int("edges", edges.Len()))

	profile := demand.DefaultProfile()
	if demandFile != "" {
		profile, err = demand.LoadProfile(demandFile)
		if err != nil {
			return err
		}
	}
	profile.Window = spec.Window
	if err := profile.Validate(edges); err != nil {
		return err
	}

	spec.BaseFleet, err = demand.Generate(profile, edges, spec.Seed)
	if err != nil {
		return err
	}
	logging.Info("Generated base fleet", zap.Int("vehicles", len(spec.BaseFleet)))

	runner := sweep.NewRunner(sumo.NewAdapter(cfg.Simulation.Binary))
	report, err := runner.Run(ctx, spec)
	if err != nil {
		return err
	}

	formatter, err := output.New(resolveFormat(cfg))
	if err != nil {
		return err
	}
	if err := formatter.RenderSweep(os.Stdout, report); err != nil {
		return err
	}

	if writeReport {
		return writeReportFiles(cfg, report)
	}
	return nil
}

// writeReportFiles writes the markdown report and CSV table configured in
// the output section, independent of the terminal format.
func writeReportFiles(cfg *config.Config, report *sweep.Report) error {
	md, _ := output.New(string(output.FormatMarkdown))
	csvf, _ := output.New(string(output.FormatCSV))

	for _, sink := range []struct {
		path      string
		formatter output.Formatter
	}{
		{cfg.Output.ReportFile, md},
		{cfg.Output.TableFile, csvf},
	} {
		f, err := os.Create(sink.path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", sink.path, err)
		}
		renderErr := sink.formatter.RenderSweep(f, report)
		if closeErr := f.Close(); renderErr == nil {
			renderErr = closeErr
		}
		if renderErr != nil {
			return fmt.Errorf("writing %s: %w", sink.path, renderErr)
		}
		logging.Info("Wrote output file", zap.String("path", sink.path))
	}
	return nil
}

func resolveFormat(cfg *config.Config) string {
	if outputFormat != "" {
		return outputFormat
	}
	if cfg.Output.DefaultFormat != "" {
		return cfg.Output.DefaultFormat
	}
	return string(output.FormatCLI)
}
