// Package adoption models EV adoption share as a function of toll price.
// The model is a parameterized sigmoid with a non-zero baseline: tolls on
// combustion vehicles push adoption from a baseline share toward a
// saturation share, transitioning around a midpoint price.
package adoption

import (
	"math"

	"tollsweep/internal/errors"
)

// Parameters holds the adoption-curve parameters. It is a plain value;
// every computation is reproducible from a Parameters and a toll alone.
type Parameters struct {
	// BaselineShare is the EV share at zero toll
	BaselineShare float64 `json:"baseline_share"`

	// MaxShare is the saturation share at high tolls
	MaxShare float64 `json:"max_share"`

	// Midpoint is the toll price (EUR) of the half-transition point
	Midpoint float64 `json:"midpoint"`

	// Steepness controls how fast adoption transitions around the midpoint
	Steepness float64 `json:"steepness"`

	// ZeroTollOverride, when set, replaces the share at exactly zero toll.
	// Some deployments define a distinct no-toll baseline instead of
	// evaluating the sigmoid at zero; this makes that choice explicit.
	ZeroTollOverride *float64 `json:"zero_toll_override,omitempty"`
}

// DefaultParameters returns the documented default constants.
func DefaultParameters() Parameters {
	return Parameters{
		BaselineShare: 0.15,
		MaxShare:      0.90,
		Midpoint:      2.5,
		Steepness:     1.0,
	}
}

// Validate checks parameter invariants. It is called once before any
// scenario work begins; Share assumes validated parameters.
func (p Parameters) Validate() error {
	if p.BaselineShare < 0 || p.BaselineShare > 1 {
		return errors.Newf(errors.TypeInvalidParameters, "baseline_share %v outside [0,1]", p.BaselineShare)
	}
	if p.MaxShare < 0 || p.MaxShare > 1 {
		return errors.Newf(errors.TypeInvalidParameters, "max_share %v outside [0,1]", p.MaxShare)
	}
	if p.BaselineShare > p.MaxShare {
		return errors.Newf(errors.TypeInvalidParameters, "baseline_share %v exceeds max_share %v", p.BaselineShare, p.MaxShare)
	}
	if p.Midpoint < 0 {
		return errors.Newf(errors.TypeInvalidParameters, "midpoint %v is negative", p.Midpoint)
	}
	if p.Steepness <= 0 {
		return errors.Newf(errors.TypeInvalidParameters, "steepness %v is not positive", p.Steepness)
	}
	if p.ZeroTollOverride != nil {
		if v := *p.ZeroTollOverride; v < 0 || v > 1 {
			return errors.Newf(errors.TypeInvalidParameters, "zero_toll_override %v outside [0,1]", v)
		}
	}
	return nil
}

// Share returns the target EV adoption share for a toll price.
// Monotone non-decreasing in toll for positive steepness; the result
// approaches BaselineShare at low tolls and MaxShare at high tolls, and
// equals their average at the midpoint.
func Share(toll float64, p Parameters) float64 {
	if toll == 0 && p.ZeroTollOverride != nil {
		return clamp01(*p.ZeroTollOverride)
	}

	sigmoid := 1 / (1 + math.Exp(-p.Steepness*(toll-p.Midpoint)))
	share := p.BaselineShare + (p.MaxShare-p.BaselineShare)*sigmoid

	return clamp01(share)
}

// Point is one sample of the adoption curve.
type Point struct {
	Toll  float64 `json:"toll"`
	Share float64 `json:"share"`
}

// Curve samples the adoption share across a toll grid.
func Curve(grid []float64, p Parameters) []Point {
	points := make([]Point, 0, len(grid))
	for _, toll := range grid {
		points = append(points, Point{Toll: toll, Share: Share(toll, p)})
	}
	return points
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
