// Package demand synthesizes the base demand set: untyped vehicles with
// origin/destination edges and departures spread over the simulation
// window. The demand is generated once and shared read-only by every
// scenario in a sweep.
package demand

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"tollsweep/core/fleet"
	"tollsweep/core/network"
	"tollsweep/core/scenario"
	"tollsweep/internal/errors"
)

// Profile describes how the base demand is generated.
type Profile struct {
	// Vehicles is the number of trips to generate
	Vehicles int `yaml:"vehicles"`

	// Window is the departure window
	Window scenario.Window `yaml:"window"`

	// MainEdges is a subset of well-connected edges preferred as
	// endpoints; trips using them are more likely to be routable
	MainEdges []string `yaml:"main_edges"`

	// MainEdgeBias is the fraction of trips constrained to MainEdges
	MainEdgeBias float64 `yaml:"main_edge_bias"`
}

// DefaultProfile mirrors the reference demand set: 5000 vehicles over the
// morning window, 70% on the main corridor.
func DefaultProfile() *Profile {
	return &Profile{
		Vehicles:     5000,
		Window:       scenario.DefaultWindow(),
		MainEdgeBias: 0.7,
	}
}

// LoadProfile reads a YAML demand profile. Unset fields keep their
// defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("reading demand profile", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, errors.Config("parsing demand profile", err)
	}
	return profile, nil
}

// Validate checks the profile against the network's edge set.
func (p *Profile) Validate(edges *network.Edges) error {
	if p.Vehicles < 0 {
		return errors.Newf(errors.TypeConfig, "negative vehicle count %d", p.Vehicles)
	}
	if p.Window.End <= p.Window.Begin {
		return errors.Newf(errors.TypeConfig, "empty demand window [%d, %d]", p.Window.Begin, p.Window.End)
	}
	if p.MainEdgeBias < 0 || p.MainEdgeBias > 1 {
		return errors.Newf(errors.TypeConfig, "main_edge_bias %v outside [0,1]", p.MainEdgeBias)
	}
	for _, id := range p.MainEdges {
		if !edges.Contains(network.EdgeID(id)) {
			return errors.Newf(errors.TypeConfig, "main edge %q not present in network", id)
		}
	}
	return nil
}

// Generate produces the base demand from a profile and a network edge
// set. Deterministic given the seed.
func Generate(p *Profile, edges *network.Edges, seed int64) ([]fleet.Vehicle, error) {
	if err := p.Validate(edges); err != nil {
		return nil, err
	}

	ids := edges.IDs()
	main := p.MainEdges
	rng := rand.New(rand.NewSource(seed))
	duration := float64(p.Window.Duration())

	vehicles := make([]fleet.Vehicle, 0, p.Vehicles)
	for i := 0; i < p.Vehicles; i++ {
		depart := float64(p.Window.Begin) + float64(i)/float64(p.Vehicles)*duration

		var from, to string
		if len(main) > 0 && rng.Float64() < p.MainEdgeBias {
			from = main[rng.Intn(len(main))]
			to = main[rng.Intn(len(main))]
		} else {
			from = string(ids[rng.Intn(len(ids))])
			to = string(ids[rng.Intn(len(ids))])
		}

		vehicles = append(vehicles, fleet.Vehicle{
			ID:     fmt.Sprintf("%d", i),
			From:   from,
			To:     to,
			Depart: depart,
		})
	}
	return vehicles, nil
}
