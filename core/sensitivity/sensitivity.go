// Package sensitivity perturbs the adoption model's parameters one at a
// time and ranks them by how much they move the adoption share at a fixed
// reference toll (a tornado ordering). It depends only on the adoption
// model; simulator outputs are never involved.
package sensitivity

import (
	"math"
	"sort"

	"tollsweep/core/adoption"
	"tollsweep/internal/errors"
)

// Parameter names, also the tornado row labels.
const (
	ParamMidpoint  = "midpoint"
	ParamSteepness = "steepness"
	ParamBaseline  = "baseline_share"
	ParamMaxShare  = "max_share"
)

// DefaultPerturbation is the relative perturbation applied to each
// parameter, before domain clamping.
const DefaultPerturbation = 0.20

// Config describes one sensitivity study.
type Config struct {
	// Defaults are the unperturbed parameters
	Defaults adoption.Parameters

	// ReferenceToll is the toll at which deltas are measured
	ReferenceToll float64

	// Grid is the toll grid used for the per-parameter curves
	Grid []float64

	// Perturbation is the relative perturbation; 0 means DefaultPerturbation
	Perturbation float64
}

// TornadoEntry is the ranked impact record for one parameter.
type TornadoEntry struct {
	Parameter string  `json:"parameter"`
	LowValue  float64 `json:"low_value"`
	HighValue float64 `json:"high_value"`
	// LowDelta and HighDelta are signed share changes versus the
	// unperturbed reference evaluation
	LowDelta  float64 `json:"low_delta"`
	HighDelta float64 `json:"high_delta"`
	Impact    float64 `json:"impact"`
}

// Curve is the adoption-share curve for one perturbed parameter value,
// for plotting by an external collaborator.
type Curve struct {
	Parameter string           `json:"parameter"`
	Label     string           `json:"label"` // low, default, high
	Value     float64          `json:"value"`
	Points    []adoption.Point `json:"points"`
}

// Analysis is the study output. Tornado is sorted descending by impact.
type Analysis struct {
	ReferenceToll  float64        `json:"reference_toll"`
	ReferenceShare float64        `json:"reference_share"`
	Perturbation   float64        `json:"perturbation"`
	Tornado        []TornadoEntry `json:"tornado"`
	Curves         []Curve        `json:"curves"`
}

// perturbed returns a copy of the defaults with one parameter replaced.
func perturbed(defaults adoption.Parameters, name string, value float64) adoption.Parameters {
	p := defaults
	switch name {
	case ParamMidpoint:
		p.Midpoint = value
	case ParamSteepness:
		p.Steepness = value
	case ParamBaseline:
		p.BaselineShare = value
	case ParamMaxShare:
		p.MaxShare = value
	}
	return p
}

// bounds returns the low and high perturbed values for a parameter,
// clamped to keep the parameter set valid.
func bounds(defaults adoption.Parameters, name string, rel float64) (low, high float64) {
	switch name {
	case ParamMidpoint:
		v := defaults.Midpoint
		return v * (1 - rel), v * (1 + rel)
	case ParamSteepness:
		v := defaults.Steepness
		return v * (1 - rel), v * (1 + rel)
	case ParamBaseline:
		v := defaults.BaselineShare
		return math.Max(v*(1-rel), 0), math.Min(v*(1+rel), defaults.MaxShare)
	case ParamMaxShare:
		v := defaults.MaxShare
		return math.Max(v*(1-rel), defaults.BaselineShare), math.Min(v*(1+rel), 1)
	}
	return 0, 0
}

// Analyze runs the study.
func Analyze(cfg Config) (*Analysis, error) {
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, err
	}
	if cfg.ReferenceToll < 0 {
		return nil, errors.InvalidParameters("reference toll is negative")
	}
	rel := cfg.Perturbation
	if rel == 0 {
		rel = DefaultPerturbation
	}
	if rel < 0 || rel >= 1 {
		return nil, errors.Newf(errors.TypeInvalidParameters, "perturbation %v outside (0,1)", rel)
	}

	refShare := adoption.Share(cfg.ReferenceToll, cfg.Defaults)
	analysis := &Analysis{
		ReferenceToll:  cfg.ReferenceToll,
		ReferenceShare: refShare,
		Perturbation:   rel,
	}

	names := []string{ParamMidpoint, ParamSteepness, ParamBaseline, ParamMaxShare}
	for _, name := range names {
		low, high := bounds(cfg.Defaults, name, rel)

		lowShare := adoption.Share(cfg.ReferenceToll, perturbed(cfg.Defaults, name, low))
		highShare := adoption.Share(cfg.ReferenceToll, perturbed(cfg.Defaults, name, high))

		entry := TornadoEntry{
			Parameter: name,
			LowValue:  low,
			HighValue: high,
			LowDelta:  lowShare - refShare,
			HighDelta: highShare - refShare,
		}
		entry.Impact = math.Abs(entry.HighDelta - entry.LowDelta)
		analysis.Tornado = append(analysis.Tornado, entry)

		if len(cfg.Grid) > 0 {
			defaultValue := defaultValueOf(cfg.Defaults, name)
			analysis.Curves = append(analysis.Curves,
				Curve{Parameter: name, Label: "low", Value: low, Points: adoption.Curve(cfg.Grid, perturbed(cfg.Defaults, name, low))},
				Curve{Parameter: name, Label: "default", Value: defaultValue, Points: adoption.Curve(cfg.Grid, cfg.Defaults)},
				Curve{Parameter: name, Label: "high", Value: high, Points: adoption.Curve(cfg.Grid, perturbed(cfg.Defaults, name, high))},
			)
		}
	}

	sort.SliceStable(analysis.Tornado, func(i, j int) bool {
		return analysis.Tornado[i].Impact > analysis.Tornado[j].Impact
	})
	return analysis, nil
}

func defaultValueOf(p adoption.Parameters, name string) float64 {
	switch name {
	case ParamMidpoint:
		return p.Midpoint
	case ParamSteepness:
		return p.Steepness
	case ParamBaseline:
		return p.BaselineShare
	case ParamMaxShare:
		return p.MaxShare
	}
	return 0
}
