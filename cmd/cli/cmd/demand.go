// Package cmd - demand command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tollsweep/core/demand"
	"tollsweep/core/network"
	"tollsweep/internal/config"
)

var (
	demandNetwork string
	demandSeed    int64
)

// demandCmd represents the demand command
var demandCmd = &cobra.Command{
	Use:   "demand [profile.yml]",
	Short: "Validate a demand profile against the road network",
	Long: `Load a demand profile, check it against the network, and report what
a generated base fleet would look like. Useful before committing to a
long sweep.

Examples:
  tollsweep demand
  tollsweep demand demand.yml
  tollsweep demand --network city.net.xml demand.yml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemand,
}

func init() {
	demandCmd.Flags().StringVarP(&demandNetwork, "network", "n", "", "road network file (default from config)")
	demandCmd.Flags().Int64Var(&demandSeed, "seed", 0, "generation seed for the preview")
}

func runDemand(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	networkFile := cfg.Simulation.NetworkFile
	if demandNetwork != "" {
		networkFile = demandNetwork
	}
	edges, err := network.LoadEdges(networkFile)
	if err != nil {
		return err
	}

	profile := demand.DefaultProfile()
	if len(args) > 0 {
		profile, err = demand.LoadProfile(args[0])
		if err != nil {
			return err
		}
	}
	if err := profile.Validate(edges); err != nil {
		return err
	}

	vehicles, err := demand.Generate(profile, edges, demandSeed)
	if err != nil {
		return err
	}

	fmt.Printf("Network:        %s (%d edges)\n", networkFile, edges.Len())
	fmt.Printf("Vehicles:       %d\n", len(vehicles))
	fmt.Printf("Window:         %d-%d (step %d)\n", profile.Window.Begin, profile.Window.End, profile.Window.StepLength)
	if len(profile.MainEdges) > 0 {
		fmt.Printf("Main edges:     %d (bias %.2f)\n", len(profile.MainEdges), profile.MainEdgeBias)
	}
	if len(vehicles) > 0 {
		fmt.Printf("First depart:   %.1f\n", vehicles[0].Depart)
		fmt.Printf("Last depart:    %.1f\n", vehicles[len(vehicles)-1].Depart)
	}
	return nil
}
