// Package fleet synthesizes labeled vehicle fleets. Given a base demand set
// and a target EV share, each vehicle is independently labeled EV or ICE
// from a seeded pseudo-random source, so the same seed and vehicle ordering
// always reproduce the same assignment.
package fleet

import (
	"math/rand"

	"tollsweep/core/adoption"
	"tollsweep/core/scenario"
)

// VehicleType classifies a vehicle's powertrain.
type VehicleType string

const (
	// TypeICE is an internal-combustion vehicle (pays the toll)
	TypeICE VehicleType = "ICE"

	// TypeEV is an electric vehicle (zero tailpipe emissions)
	TypeEV VehicleType = "EV"
)

// Vehicle is one trip in the demand set. From and To are opaque edge
// identifiers taken from the network description. A vehicle is labeled
// exactly once during synthesis and is immutable afterwards.
type Vehicle struct {
	ID     string
	From   string
	To     string
	Depart float64
	Type   VehicleType
}

// TypeProfile is a per-scenario powertrain descriptor carried through to
// the simulator. Profiles are attached once per artifact, not per vehicle.
type TypeProfile struct {
	ID            VehicleType
	EmissionClass string
	Color         string
	// EmissionsProbability enables per-vehicle emission accounting
	EmissionsProbability float64
}

// DefaultProfiles returns the ICE and EV descriptors: a nonzero tailpipe
// emission class for ICE, and the zero-tailpipe energy-accounting class
// for EV.
func DefaultProfiles() [2]TypeProfile {
	return [2]TypeProfile{
		{
			ID:                   TypeICE,
			EmissionClass:        "HBEFA3/PC_G_EU4",
			Color:                "1,0,0",
			EmissionsProbability: 1.0,
		},
		{
			ID:                   TypeEV,
			EmissionClass:        "Energy/unknown",
			Color:                "0,1,0",
			EmissionsProbability: 1.0,
		},
	}
}

// Artifact is the complete synthesized scenario for one toll price: the
// labeled fleet, the type profiles, and the simulation window. Artifacts
// are independent and never share mutable state.
type Artifact struct {
	Toll        scenario.TollPrice
	TargetShare float64
	Vehicles    []Vehicle
	Profiles    [2]TypeProfile
	Window      scenario.Window
	Seed        int64
}

// EVCount returns the number of vehicles labeled EV.
func (a *Artifact) EVCount() int {
	n := 0
	for _, v := range a.Vehicles {
		if v.Type == TypeEV {
			n++
		}
	}
	return n
}

// EVShare returns the realized EV fraction, 0 for an empty fleet.
func (a *Artifact) EVShare() float64 {
	if len(a.Vehicles) == 0 {
		return 0
	}
	return float64(a.EVCount()) / float64(len(a.Vehicles))
}

// Synthesize labels the base fleet for one toll price. The base slice is
// not modified; the artifact owns its own copy. An empty base fleet yields
// a valid zero-vehicle artifact.
func Synthesize(base []Vehicle, toll scenario.TollPrice, params adoption.Parameters, window scenario.Window, seed int64) *Artifact {
	share := adoption.Share(float64(toll), params)
	rng := rand.New(rand.NewSource(seed))

	vehicles := make([]Vehicle, len(base))
	copy(vehicles, base)
	for i := range vehicles {
		if rng.Float64() < share {
			vehicles[i].Type = TypeEV
		} else {
			vehicles[i].Type = TypeICE
		}
	}

	return &Artifact{
		Toll:        toll,
		TargetShare: share,
		Vehicles:    vehicles,
		Profiles:    DefaultProfiles(),
		Window:      window,
		Seed:        seed,
	}
}
