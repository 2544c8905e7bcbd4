// Package stepadvance implements the step-advance policy: the decision of
// when the controller should move from the active route step to the next
// one (spec section 4.2).
package stepadvance

import (
	"github.com/asgard/wayfarer/geo"
	"github.com/asgard/wayfarer/navroute"
)

// Kind discriminates the three step-advance policies. Go has no sum
// types, so Mode is a discriminated struct: exactly the fields for Kind
// are meaningful, following the same shape the deviation package uses
// for deviation.Tracking.
type Kind int

const (
	// Manual means the controller never advances automatically; only an
	// explicit AdvanceToNextStep call moves to the next step.
	Manual Kind = iota
	// DistanceToEndOfStep advances once the snapped position has little
	// enough distance remaining on the current step and the location's
	// accuracy is good enough.
	DistanceToEndOfStep
	// RelativeLineStringDistance advances either when close enough to the
	// end of the current step, or when the user is already closer to the
	// next step's line than to the current one.
	RelativeLineStringDistance
)

// Mode configures the step-advance policy. Only the fields relevant to
// Kind are read.
type Mode struct {
	Kind Kind

	// DistanceM is the DistanceToEndOfStep threshold: advance once
	// remaining distance on the current step is <= this many meters.
	DistanceM float64
	// MinHorizontalAccuracyM gates DistanceToEndOfStep and
	// RelativeLineStringDistance: the location's horizontal accuracy
	// must be <= this value.
	MinHorizontalAccuracyM float64
	// AutomaticAdvanceDistanceM is the RelativeLineStringDistance
	// close-enough-to-finish-the-step threshold.
	AutomaticAdvanceDistanceM float64
}

// Input bundles the observation ShouldAdvance needs: the user's location
// (its horizontal accuracy, and its coordinates for measuring
// perpendicular distances to the current and next step lines), the
// remaining distance on the current step, and the two steps themselves.
type Input struct {
	Location                navroute.UserLocation
	RemainingDistanceOnStepM float64
	CurrentStep              navroute.RouteStep
	NextStep                 *navroute.RouteStep // nil if the current step is the last one
}

// ShouldAdvance reports whether the active step is finished and the
// controller should drop it and move to the next one.
func ShouldAdvance(mode Mode, in Input) bool {
	switch mode.Kind {
	case Manual:
		return false

	case DistanceToEndOfStep:
		return in.Location.HorizontalAccuracyM <= mode.MinHorizontalAccuracyM &&
			in.RemainingDistanceOnStepM <= mode.DistanceM

	case RelativeLineStringDistance:
		if in.Location.HorizontalAccuracyM > mode.MinHorizontalAccuracyM {
			return false
		}
		if in.RemainingDistanceOnStepM <= mode.AutomaticAdvanceDistanceM {
			return true
		}
		if in.NextStep == nil {
			return false
		}
		dCurrent := geo.SnapToLineString(in.Location.Coordinates, in.CurrentStep.Geometry).PerpendicularM
		dNext := geo.SnapToLineString(in.Location.Coordinates, in.NextStep.Geometry).PerpendicularM
		return dNext < dCurrent

	default:
		return false
	}
}
