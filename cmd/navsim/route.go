package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/asgard/wayfarer/navroute"
)

// demoRoute builds a short two-step route along a straight line for navsim
// to drive a controller against when no serial device is supplied.
func demoRoute() (*navroute.Route, error) {
	start := navroute.GeographicCoordinate{Lat: 37.7749, Lng: -122.4194}
	mid := navroute.GeographicCoordinate{Lat: 37.7790, Lng: -122.4194}
	end := navroute.GeographicCoordinate{Lat: 37.7831, Lng: -122.4194}

	turnType := "turn"
	rightModifier := "right"

	steps := []navroute.RouteStep{
		{
			Geometry:  []navroute.GeographicCoordinate{start, mid},
			DistanceM: 456,
			Instruction: "Head north",
			VisualInstructions: []navroute.VisualInstruction{
				{Primary: navroute.VisualInstructionContent{Text: "Head north", ManeuverType: &turnType}, TriggerDistanceBeforeManeuverM: 200},
				{Primary: navroute.VisualInstructionContent{Text: "Turn right ahead", ManeuverType: &turnType, ManeuverModifier: &rightModifier}, TriggerDistanceBeforeManeuverM: 50},
			},
			SpokenInstructions: []navroute.SpokenInstruction{
				{Text: "Head north for 450 meters", TriggerDistanceBeforeManeuverM: 450, UtteranceID: uuid.New()},
				{Text: "Turn right", TriggerDistanceBeforeManeuverM: 50, UtteranceID: uuid.New()},
			},
		},
		{
			Geometry:  []navroute.GeographicCoordinate{mid, end},
			DistanceM: 456,
			Instruction: "Continue north, you have arrived",
			VisualInstructions: []navroute.VisualInstruction{
				{Primary: navroute.VisualInstructionContent{Text: "You have arrived at your destination"}, TriggerDistanceBeforeManeuverM: 30},
			},
			SpokenInstructions: []navroute.SpokenInstruction{
				{Text: "You have arrived", TriggerDistanceBeforeManeuverM: 30, UtteranceID: uuid.New()},
			},
		},
	}

	waypoints := []navroute.Waypoint{
		{Coordinate: start, Kind: navroute.Break},
		{Coordinate: end, Kind: navroute.Break},
	}

	return navroute.NewRoute(steps, waypoints)
}

// simulateFixes walks the route's full geometry in fixed-size steps,
// emitting one UserLocation per tickInterval. The channel closes once the
// final point has been emitted.
func simulateFixes(route *navroute.Route, tickInterval time.Duration) <-chan navroute.UserLocation {
	const stepsPerSegment = 8

	fixes := make(chan navroute.UserLocation)
	go func() {
		defer close(fixes)

		geometry := route.Geometry
		for i := 0; i < len(geometry)-1; i++ {
			a, b := geometry[i], geometry[i+1]
			for s := 0; s < stepsPerSegment; s++ {
				frac := float64(s) / float64(stepsPerSegment)
				fix := navroute.UserLocation{
					Coordinates: navroute.GeographicCoordinate{
						Lat: a.Lat + (b.Lat-a.Lat)*frac,
						Lng: a.Lng + (b.Lng-a.Lng)*frac,
					},
					HorizontalAccuracyM: 5,
					Timestamp:           time.Now(),
				}
				fixes <- fix
				time.Sleep(tickInterval)
			}
		}
		fixes <- navroute.UserLocation{Coordinates: geometry[len(geometry)-1], HorizontalAccuracyM: 5, Timestamp: time.Now()}
	}()

	return fixes
}
