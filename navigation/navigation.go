// Package navigation implements the navigation controller: the
// deterministic, side-effect-free state machine over
// (Route, Config) x TripState x UserLocation -> TripState (spec section
// 4.5). It composes geo, navroute, stepadvance, deviation, and
// instruction; it performs no I/O and holds no clock.
package navigation

import (
	"github.com/asgard/wayfarer/deviation"
	"github.com/asgard/wayfarer/geo"
	"github.com/asgard/wayfarer/instruction"
	"github.com/asgard/wayfarer/navroute"
	"github.com/asgard/wayfarer/stepadvance"
)

// Config bundles the two pluggable policies the controller evaluates on
// every tick.
type Config struct {
	StepAdvance            stepadvance.Mode
	RouteDeviationTracking deviation.Tracking
}

// TripStateKind discriminates the two TripState variants.
type TripStateKind int

const (
	// Navigating means the trip is in progress.
	Navigating TripStateKind = iota
	// Complete means every step has been consumed.
	Complete
)

// TripState is the value returned from every controller tick. Only the
// fields relevant to Kind are populated: a Complete state carries none of
// the Navigating fields.
type TripState struct {
	Kind TripStateKind

	SnappedLocation         navroute.GeographicCoordinate
	RemainingSteps          []navroute.RouteStep
	RemainingWaypoints      []navroute.Waypoint
	DistanceToNextManeuverM float64
	Deviation               deviation.Result
	VisualInstruction       *navroute.VisualInstruction
	SpokenInstruction       *navroute.SpokenInstruction
}

// completeState is the single Complete value; TripState is a plain value
// type so every Complete instance compares and copies identically.
var completeState = TripState{Kind: Complete}

// Controller is constructed from an immutable Route and Config and
// thereafter holds no mutable state of its own: every method derives the
// next TripState purely from its arguments.
type Controller struct {
	route  *navroute.Route
	config Config
}

// New constructs a Controller over route and config. It is infallible:
// route has already passed NewRoute's invariants by the time it reaches
// here.
func New(route *navroute.Route, config Config) *Controller {
	return &Controller{route: route, config: config}
}

// InitialState snaps location to the route's first step and returns a
// Navigating state over every step and waypoint.
func (c *Controller) InitialState(location navroute.UserLocation) TripState {
	state := TripState{
		Kind:               Navigating,
		RemainingSteps:     c.route.Steps,
		RemainingWaypoints: c.route.Waypoints,
	}
	// The step-advance policy is not evaluated on the first fix, so every
	// step stays in RemainingSteps.
	initial := *c
	initial.config.StepAdvance = stepadvance.Mode{Kind: stepadvance.Manual}
	return initial.tick(state, location)
}

// UpdateUserLocation runs one controller tick: re-snap to the current
// step, advance past any steps the configured policy says are finished,
// recompute deviation, and reselect instructions. A Complete state is
// returned unchanged.
func (c *Controller) UpdateUserLocation(state TripState, location navroute.UserLocation) TripState {
	if state.Kind == Complete {
		return state
	}
	return c.tick(state, location)
}

// AdvanceToNextStep forces exactly one step advance regardless of the
// configured step-advance policy, dropping any waypoint whose coordinate
// the finished step ends on. A Complete state is returned unchanged.
func (c *Controller) AdvanceToNextStep(state TripState) TripState {
	if state.Kind == Complete {
		return state
	}
	remaining, waypoints, ok := dropHeadStep(state.RemainingSteps, state.RemainingWaypoints)
	if !ok || len(remaining) == 0 {
		return completeState
	}
	state.RemainingSteps = remaining
	state.RemainingWaypoints = waypoints
	return state
}

// tick runs the section 4.5 update algorithm against state's current
// remaining_steps, advancing steps until the configured policy is
// satisfied or the route is exhausted.
func (c *Controller) tick(state TripState, location navroute.UserLocation) TripState {
	remainingSteps := state.RemainingSteps
	remainingWaypoints := state.RemainingWaypoints

	var snap geo.LineStringSnapResult
	var remainingOnStep float64

	// At most len(remaining_steps) iterations: each pass either returns or
	// strictly shortens remainingSteps.
	bound := len(remainingSteps)
	for i := 0; i <= bound; i++ {
		if len(remainingSteps) == 0 {
			return completeState
		}
		current := remainingSteps[0]
		snap = geo.SnapToLineString(location.Coordinates, current.Geometry)
		remainingOnStep = geo.RemainingDistanceOnLine(current.Geometry, snap.SegmentIndex, snap.T)

		var nextStep *navroute.RouteStep
		if len(remainingSteps) > 1 {
			nextStep = &remainingSteps[1]
		}

		shouldAdvance := stepadvance.ShouldAdvance(c.config.StepAdvance, stepadvance.Input{
			Location:                 location,
			RemainingDistanceOnStepM: remainingOnStep,
			CurrentStep:              current,
			NextStep:                 nextStep,
		})
		if !shouldAdvance {
			break
		}

		next, waypoints, ok := dropHeadStep(remainingSteps, remainingWaypoints)
		if !ok {
			return completeState
		}
		remainingSteps = next
		remainingWaypoints = waypoints
	}

	dev := deviation.Detect(c.config.RouteDeviationTracking, c.route, remainingSteps, location)

	current := remainingSteps[0]
	visual := instruction.SelectVisual(current.VisualInstructions, remainingOnStep)
	spoken := instruction.SelectSpoken(current.SpokenInstructions, remainingOnStep)

	return TripState{
		Kind:                    Navigating,
		SnappedLocation:         snap.Snapped,
		RemainingSteps:          remainingSteps,
		RemainingWaypoints:      remainingWaypoints,
		DistanceToNextManeuverM: remainingOnStep,
		Deviation:               dev,
		VisualInstruction:       visual,
		SpokenInstruction:       spoken,
	}
}

// dropHeadStep removes the first remaining step. If that step's last
// geometry point coincides with a Break waypoint, that waypoint is
// removed from the returned waypoint list too. ok is false when there was
// no step left to drop (the route is exhausted).
func dropHeadStep(steps []navroute.RouteStep, waypoints []navroute.Waypoint) (remainingSteps []navroute.RouteStep, remainingWaypoints []navroute.Waypoint, ok bool) {
	if len(steps) == 0 {
		return steps, waypoints, false
	}
	finished := steps[0]
	stepEnd := finished.Geometry[len(finished.Geometry)-1]

	remainingSteps = steps[1:]
	remainingWaypoints = waypoints
	for i, wp := range waypoints {
		if wp.Kind == navroute.Break && wp.Coordinate == stepEnd {
			remainingWaypoints = append(append([]navroute.Waypoint(nil), waypoints[:i]...), waypoints[i+1:]...)
			break
		}
	}
	return remainingSteps, remainingWaypoints, true
}
