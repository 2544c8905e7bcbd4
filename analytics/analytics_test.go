package analytics

import (
	"testing"

	"github.com/asgard/wayfarer/deviation"
	"github.com/asgard/wayfarer/navigation"
)

func navigating(remainingM float64, offRoute bool, deviationM float64) navigation.TripState {
	dev := deviation.NoDeviation
	if offRoute {
		dev = deviation.OffRoute(deviationM)
	}
	return navigation.TripState{
		Kind:                    navigation.Navigating,
		DistanceToNextManeuverM: remainingM,
		Deviation:               dev,
	}
}

func TestSummarize_EmptyTrip(t *testing.T) {
	report, err := Summarize(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Ticks != 0 || report.OffRouteTicks != 0 {
		t.Errorf("got %+v, want zero report", report)
	}
}

func TestSummarize_CountsTicksAndDeviations(t *testing.T) {
	states := []navigation.TripState{
		navigating(100, false, 0),
		navigating(50, true, 10),
		navigating(25, true, 30),
		{Kind: navigation.Complete},
	}

	report, err := Summarize(states)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Ticks != 4 {
		t.Errorf("Ticks = %v, want 4", report.Ticks)
	}
	if report.OffRouteTicks != 2 {
		t.Errorf("OffRouteTicks = %v, want 2", report.OffRouteTicks)
	}
	if report.MaxDeviationM != 30 {
		t.Errorf("MaxDeviationM = %v, want 30", report.MaxDeviationM)
	}
	if report.MedianRemainingM != 50 {
		t.Errorf("MedianRemainingM = %v, want 50", report.MedianRemainingM)
	}
}

func TestSummarize_NoDeviationsLeavesDeviationStatsZero(t *testing.T) {
	states := []navigation.TripState{navigating(100, false, 0), navigating(50, false, 0)}

	report, err := Summarize(states)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.MaxDeviationM != 0 || report.MedianDeviationM != 0 {
		t.Errorf("got %+v, want zero deviation stats", report)
	}
}
