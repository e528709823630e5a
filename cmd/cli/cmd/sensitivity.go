// Package cmd - sensitivity command
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"tollsweep/adapters/sweephcl"
	"tollsweep/core/adoption"
	"tollsweep/core/output"
	"tollsweep/core/sensitivity"
	"tollsweep/internal/config"
)

var (
	referenceToll float64
	perturbation  float64
	sensSpecFile  string
)

// sensitivityCmd represents the sensitivity command
var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Rank adoption parameters by their effect on EV share",
	Long: `Perturb each adoption parameter around its default and rank the
parameters by how much the EV share at a reference toll moves. No
simulation is run; this exercises the adoption model alone.

Examples:
  tollsweep sensitivity
  tollsweep sensitivity --reference-toll 3.0 --perturbation 0.1
  tollsweep sensitivity --spec sweep.hcl --format json`,
	Args: cobra.NoArgs,
	RunE: runSensitivity,
}

func init() {
	sensitivityCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, csv, markdown, json)")
	sensitivityCmd.Flags().Float64Var(&referenceToll, "reference-toll", 2.5, "toll at which deltas are measured")
	sensitivityCmd.Flags().Float64Var(&perturbation, "perturbation", 0, "relative perturbation (default 0.2)")
	sensitivityCmd.Flags().StringVar(&sensSpecFile, "spec", "", "sweep spec whose adoption block and toll grid to analyze")
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	analysisCfg := sensitivity.Config{
		Defaults:      adoption.DefaultParameters(),
		ReferenceToll: referenceToll,
		Grid:          []float64{0, 0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0},
		Perturbation:  perturbation,
	}

	if sensSpecFile != "" {
		file, err := sweephcl.Load(sensSpecFile)
		if err != nil {
			return err
		}
		analysisCfg.Defaults = file.Params()
		if len(file.Tolls) > 0 {
			analysisCfg.Grid = file.Tolls
		}
	}

	analysis, err := sensitivity.Analyze(analysisCfg)
	if err != nil {
		return err
	}

	formatter, err := output.New(resolveFormat(cfg))
	if err != nil {
		return err
	}
	return formatter.RenderSensitivity(os.Stdout, analysis)
}
