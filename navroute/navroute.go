// Package navroute defines the immutable route value types the
// navigation controller operates on: Route, RouteStep, Waypoint,
// VisualInstruction, SpokenInstruction, and the UserLocation observations
// fed into it (spec section 3).
//
// Route (and everything reachable from it) is immutable once constructed;
// NewRoute is the only way to obtain one, and it validates every
// construction-time invariant up front so the controller never has to.
package navroute

import (
	"time"

	"github.com/google/uuid"

	"github.com/asgard/wayfarer/geo"
	"github.com/asgard/wayfarer/naverrors"
)

// GeographicCoordinate is a point on the earth's surface. lat must be in
// [-90, 90] and lng in [-180, 180]; NewGeographicCoordinate enforces this,
// but the bare struct literal is also used freely inside this package and
// its adapters once a value is known to be valid (e.g. route geometry
// parsed from a trusted provider response).
type GeographicCoordinate = geo.Coordinate

// NewGeographicCoordinate validates lat/lng and returns a
// GeographicCoordinate, or a KindRouteInvariantViolation error.
func NewGeographicCoordinate(lat, lng float64) (GeographicCoordinate, error) {
	if lat < -90 || lat > 90 {
		return GeographicCoordinate{}, naverrors.New(naverrors.KindRouteInvariantViolation, "latitude out of range [-90, 90]")
	}
	if lng < -180 || lng > 180 {
		return GeographicCoordinate{}, naverrors.New(naverrors.KindRouteInvariantViolation, "longitude out of range [-180, 180]")
	}
	return GeographicCoordinate{Lat: lat, Lng: lng}, nil
}

// BoundingBox is the southwest/northeast corner pair enclosing a route.
// Invariant: SW.Lat <= NE.Lat.
type BoundingBox struct {
	SW GeographicCoordinate
	NE GeographicCoordinate
}

// CourseOverGround is the user's heading, absent when the platform reports
// an invalid value.
type CourseOverGround struct {
	Degrees  uint16 // [0, 360)
	Accuracy uint16
}

// UserLocation is a single location fix fed into the controller.
// A HorizontalAccuracyM of 0 is treated as perfect accuracy and passes
// every accuracy threshold; hosts whose platform reports 0 as "unknown"
// must translate that value before passing the fix in.
type UserLocation struct {
	Coordinates         GeographicCoordinate
	HorizontalAccuracyM float64 // meters, >= 0
	Course              *CourseOverGround
	Timestamp           time.Time
}

// WaypointKind distinguishes stopping points from pass-through constraints.
type WaypointKind int

const (
	// Break waypoints are stopping points.
	Break WaypointKind = iota
	// Via waypoints are pass-through constraints.
	Via
)

// Waypoint is a stop or pass-through point along a route.
type Waypoint struct {
	Coordinate GeographicCoordinate
	Kind       WaypointKind
}

// VisualInstructionContent is the text and maneuver metadata shown for one
// banner.
type VisualInstructionContent struct {
	Text                 string
	ManeuverType         *string
	ManeuverModifier     *string
	RoundaboutExitDegrees *int
}

// VisualInstruction is a banner that should be shown once the user is
// within TriggerDistanceBeforeManeuverM of the upcoming maneuver.
type VisualInstruction struct {
	Primary                       VisualInstructionContent
	Secondary                     *VisualInstructionContent
	TriggerDistanceBeforeManeuverM float64 // > 0
}

// SpokenInstruction is an utterance that should be spoken once the user is
// within TriggerDistanceBeforeManeuverM of the upcoming maneuver.
// UtteranceID is stable per logical utterance so a host can deduplicate
// repeated triggers with a set keyed by it.
type SpokenInstruction struct {
	Text                           string
	SSML                           *string
	TriggerDistanceBeforeManeuverM float64 // > 0
	UtteranceID                    uuid.UUID
}

// RouteStep is one maneuver segment: its own polyline, distance, and the
// instructions that should fire as the user approaches its end.
type RouteStep struct {
	Geometry           []GeographicCoordinate // >= 2 points
	DistanceM          float64
	RoadName           *string
	Instruction        string
	VisualInstructions []VisualInstruction
	SpokenInstructions []SpokenInstruction
}

// Route is the full, immutable path from origin to final waypoint.
type Route struct {
	Geometry   []GeographicCoordinate
	BBox       BoundingBox
	DistanceM  float64
	Waypoints  []Waypoint
	Steps      []RouteStep
}

// NewRoute validates steps and waypoints against the section 3 invariants
// and, if they hold, derives the route-level Geometry, BBox, and DistanceM
// from the steps. Deriving these fields rather than accepting them
// separately is what guarantees "concatenating step geometries (dropping
// shared endpoints) equals route geometry" by construction instead of by
// convention.
func NewRoute(steps []RouteStep, waypoints []Waypoint) (*Route, error) {
	if len(steps) == 0 {
		return nil, naverrors.New(naverrors.KindRouteInvariantViolation, "route must have at least one step")
	}

	for i, step := range steps {
		if len(step.Geometry) < 2 {
			return nil, naverrors.New(naverrors.KindRouteInvariantViolation, "step geometry must have at least 2 points")
		}
		for _, vi := range step.VisualInstructions {
			if vi.TriggerDistanceBeforeManeuverM <= 0 {
				return nil, naverrors.New(naverrors.KindRouteInvariantViolation, "visual instruction trigger distance must be > 0")
			}
		}
		for _, si := range step.SpokenInstructions {
			if si.TriggerDistanceBeforeManeuverM <= 0 {
				return nil, naverrors.New(naverrors.KindRouteInvariantViolation, "spoken instruction trigger distance must be > 0")
			}
		}
		if i > 0 {
			prevEnd := steps[i-1].Geometry[len(steps[i-1].Geometry)-1]
			curStart := step.Geometry[0]
			if prevEnd != curStart {
				return nil, naverrors.New(naverrors.KindRouteInvariantViolation, "step geometry must start where the previous step ended")
			}
		}
	}

	geometry := make([]GeographicCoordinate, 0)
	var totalDistance float64
	for i, step := range steps {
		pts := step.Geometry
		if i > 0 {
			pts = pts[1:] // drop the shared endpoint with the previous step
		}
		geometry = append(geometry, pts...)
		totalDistance += step.DistanceM
	}

	bbox := computeBoundingBox(geometry)

	return &Route{
		Geometry:  geometry,
		BBox:      bbox,
		DistanceM: totalDistance,
		Waypoints: append([]Waypoint(nil), waypoints...),
		Steps:     append([]RouteStep(nil), steps...),
	}, nil
}

func computeBoundingBox(geometry []GeographicCoordinate) BoundingBox {
	if len(geometry) == 0 {
		return BoundingBox{}
	}
	sw, ne := geometry[0], geometry[0]
	for _, c := range geometry[1:] {
		if c.Lat < sw.Lat {
			sw.Lat = c.Lat
		}
		if c.Lng < sw.Lng {
			sw.Lng = c.Lng
		}
		if c.Lat > ne.Lat {
			ne.Lat = c.Lat
		}
		if c.Lng > ne.Lng {
			ne.Lng = c.Lng
		}
	}
	return BoundingBox{SW: sw, NE: ne}
}
