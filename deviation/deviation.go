// Package deviation implements the route-deviation detector: whether the
// user has strayed from the route, and by how many meters (spec section
// 4.3).
package deviation

import (
	"github.com/asgard/wayfarer/geo"
	"github.com/asgard/wayfarer/navroute"
)

// Kind discriminates the three deviation-tracking policies.
type Kind int

const (
	// None always reports NoDeviation.
	None Kind = iota
	// StaticThreshold reports OffRoute when the perpendicular distance to
	// the entire remaining route exceeds MaxAcceptableDeviationM and the
	// location's accuracy is good enough.
	StaticThreshold
	// Custom defers entirely to a host-provided detector function.
	Custom
)

// CustomDetector is a host-provided predicate: given the route, the
// remaining steps, and the current location, decide whether the user is
// off-route. This is the one place in this package that is a genuine
// capability injection rather than a closed sum type, because only the
// host can know what "off-route" means for its own routing backend.
type CustomDetector func(route *navroute.Route, remainingSteps []navroute.RouteStep, loc navroute.UserLocation) Result

// Tracking configures the deviation detector. Only the fields relevant to
// Kind are read.
type Tracking struct {
	Kind Kind

	MinHorizontalAccuracyM  float64
	MaxAcceptableDeviationM float64
	Detector                CustomDetector
}

// Result is the outcome of a deviation check.
type Result struct {
	OffRoute   bool
	DeviationM float64
}

// NoDeviation is the zero Result: on-route.
var NoDeviation = Result{}

// OffRoute builds an off-route Result with the given perpendicular
// distance.
func OffRoute(deviationM float64) Result {
	return Result{OffRoute: true, DeviationM: deviationM}
}

// Detect runs the configured policy against loc and the remaining route
// geometry.
func Detect(tracking Tracking, route *navroute.Route, remainingSteps []navroute.RouteStep, loc navroute.UserLocation) Result {
	switch tracking.Kind {
	case None:
		return NoDeviation

	case StaticThreshold:
		if loc.HorizontalAccuracyM > tracking.MinHorizontalAccuracyM {
			return NoDeviation
		}
		remainingLine := concatenateRemainingGeometry(remainingSteps)
		if len(remainingLine) < 2 {
			return NoDeviation
		}
		perp := geo.SnapToLineString(loc.Coordinates, remainingLine).PerpendicularM
		if perp > tracking.MaxAcceptableDeviationM {
			return OffRoute(perp)
		}
		return NoDeviation

	case Custom:
		if tracking.Detector == nil {
			return NoDeviation
		}
		return tracking.Detector(route, remainingSteps, loc)

	default:
		return NoDeviation
	}
}

func concatenateRemainingGeometry(steps []navroute.RouteStep) []navroute.GeographicCoordinate {
	var line []navroute.GeographicCoordinate
	for i, step := range steps {
		pts := step.Geometry
		if i > 0 {
			pts = pts[1:]
		}
		line = append(line, pts...)
	}
	return line
}
