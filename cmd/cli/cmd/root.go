// Package cmd provides the CLI commands for tollsweep.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tollsweep/internal/config"
	"tollsweep/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tollsweep",
	Short: "Sweep toll prices through a traffic microsimulation",
	Long: `tollsweep evaluates how road toll prices shift a vehicle fleet toward
electric adoption and what that does to emissions, grid cost, and toll
revenue.

For each toll price it derives an EV adoption share, synthesizes a
labeled fleet, runs the SUMO microsimulator, and folds the per-trip
emission output into one KPI row per price.

Examples:
  tollsweep sweep sweep.hcl
  tollsweep sweep --format csv sweep.hcl
  tollsweep analyze ./scenarios
  tollsweep sensitivity --reference-toll 2.5`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tollsweep.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(demandCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tollsweep version 0.1.0")
	},
}
