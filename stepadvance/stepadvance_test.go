package stepadvance

import (
	"testing"

	"github.com/asgard/wayfarer/navroute"
)

func step(from, to navroute.GeographicCoordinate) navroute.RouteStep {
	return navroute.RouteStep{Geometry: []navroute.GeographicCoordinate{from, to}}
}

func TestShouldAdvance_Manual_NeverAdvances(t *testing.T) {
	mode := Mode{Kind: Manual}
	in := Input{RemainingDistanceOnStepM: 0, Location: navroute.UserLocation{HorizontalAccuracyM: 1}}
	if ShouldAdvance(mode, in) {
		t.Error("Manual mode should never advance automatically")
	}
}

func TestShouldAdvance_DistanceToEndOfStep(t *testing.T) {
	mode := Mode{Kind: DistanceToEndOfStep, DistanceM: 10, MinHorizontalAccuracyM: 16}

	tests := []struct {
		name     string
		accuracy float64
		remaining float64
		want     bool
	}{
		{name: "within distance and accuracy", accuracy: 5, remaining: 8, want: true},
		{name: "at exact threshold", accuracy: 16, remaining: 10, want: true},
		{name: "too far remaining", accuracy: 5, remaining: 20, want: false},
		{name: "accuracy too poor", accuracy: 20, remaining: 5, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				Location:                navroute.UserLocation{HorizontalAccuracyM: tt.accuracy},
				RemainingDistanceOnStepM: tt.remaining,
			}
			if got := ShouldAdvance(mode, in); got != tt.want {
				t.Errorf("ShouldAdvance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldAdvance_RelativeLineStringDistance_AutoAdvanceByRemainingDistance(t *testing.T) {
	mode := Mode{Kind: RelativeLineStringDistance, MinHorizontalAccuracyM: 16, AutomaticAdvanceDistanceM: 10}

	current := step(navroute.GeographicCoordinate{Lat: 0, Lng: 0}, navroute.GeographicCoordinate{Lat: 0, Lng: 0.001})
	next := step(navroute.GeographicCoordinate{Lat: 0, Lng: 0.001}, navroute.GeographicCoordinate{Lat: 0, Lng: 0.002})

	in := Input{
		Location:                 navroute.UserLocation{Coordinates: navroute.GeographicCoordinate{Lat: 0, Lng: 0.001}, HorizontalAccuracyM: 5},
		RemainingDistanceOnStepM: 8,
		CurrentStep:              current,
		NextStep:                 &next,
	}

	if !ShouldAdvance(mode, in) {
		t.Error("expected advance when remaining distance is under the automatic-advance threshold")
	}
}

func TestShouldAdvance_RelativeLineStringDistance_AdvancesWhenCloserToNext(t *testing.T) {
	mode := Mode{Kind: RelativeLineStringDistance, MinHorizontalAccuracyM: 16, AutomaticAdvanceDistanceM: 1}

	current := step(navroute.GeographicCoordinate{Lat: 0, Lng: 0}, navroute.GeographicCoordinate{Lat: 0, Lng: 0.001})
	next := step(navroute.GeographicCoordinate{Lat: 0, Lng: 0.001}, navroute.GeographicCoordinate{Lat: 0.001, Lng: 0.001})

	// A point much closer to `next`'s line than to `current`'s, but far
	// from the end of the current step, so only the d_next < d_current
	// rule can fire.
	in := Input{
		Location:                 navroute.UserLocation{Coordinates: navroute.GeographicCoordinate{Lat: 0.0005, Lng: 0.0011}, HorizontalAccuracyM: 5},
		RemainingDistanceOnStepM: 100,
		CurrentStep:              current,
		NextStep:                 &next,
	}

	if !ShouldAdvance(mode, in) {
		t.Error("expected advance when user is closer to the next step's line than the current one")
	}
}

func TestShouldAdvance_RelativeLineStringDistance_NoNextStepNeverAutoAdvancesOnProximity(t *testing.T) {
	mode := Mode{Kind: RelativeLineStringDistance, MinHorizontalAccuracyM: 16, AutomaticAdvanceDistanceM: 1}
	current := step(navroute.GeographicCoordinate{Lat: 0, Lng: 0}, navroute.GeographicCoordinate{Lat: 0, Lng: 0.001})

	in := Input{
		Location:                 navroute.UserLocation{Coordinates: navroute.GeographicCoordinate{Lat: 0, Lng: 0.001}, HorizontalAccuracyM: 5},
		RemainingDistanceOnStepM: 100,
		CurrentStep:              current,
		NextStep:                 nil,
	}

	if ShouldAdvance(mode, in) {
		t.Error("expected no advance on the last step when remaining distance exceeds the threshold")
	}
}

func TestShouldAdvance_RelativeLineStringDistance_RespectsAccuracyGate(t *testing.T) {
	mode := Mode{Kind: RelativeLineStringDistance, MinHorizontalAccuracyM: 5, AutomaticAdvanceDistanceM: 1000}
	current := step(navroute.GeographicCoordinate{Lat: 0, Lng: 0}, navroute.GeographicCoordinate{Lat: 0, Lng: 0.001})

	in := Input{
		Location:                 navroute.UserLocation{Coordinates: navroute.GeographicCoordinate{Lat: 0, Lng: 0.001}, HorizontalAccuracyM: 50},
		RemainingDistanceOnStepM: 1,
		CurrentStep:              current,
	}
	if ShouldAdvance(mode, in) {
		t.Error("expected no advance when accuracy gate fails, regardless of distance")
	}
}
