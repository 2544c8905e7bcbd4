// Package analytics computes summary statistics over a recorded trip --
// a sequence of navigation.TripState values a host captured across a
// session -- using montanaflynn/stats. None of this runs inside the
// controller; it is a post-hoc reporting tool a host may run once a trip
// finishes.
package analytics

import (
	"github.com/montanaflynn/stats"

	"github.com/asgard/wayfarer/navigation"
)

// Report summarizes a recorded trip.
type Report struct {
	Ticks            int
	OffRouteTicks    int
	MedianDeviationM float64
	P95DeviationM    float64
	MaxDeviationM    float64
	MedianRemainingM float64
}

// Summarize computes a Report over states, a chronological recording of
// every TripState a controller produced during a session. Complete
// states are counted in Ticks but contribute no distance/deviation
// samples.
func Summarize(states []navigation.TripState) (Report, error) {
	var deviations, remaining []float64
	offRoute := 0

	for _, s := range states {
		if s.Kind != navigation.Navigating {
			continue
		}
		remaining = append(remaining, s.DistanceToNextManeuverM)
		if s.Deviation.OffRoute {
			offRoute++
			deviations = append(deviations, s.Deviation.DeviationM)
		}
	}

	report := Report{Ticks: len(states), OffRouteTicks: offRoute}

	if len(deviations) > 0 {
		median, err := stats.Median(deviations)
		if err != nil {
			return Report{}, err
		}
		p95, err := stats.Percentile(deviations, 95)
		if err != nil {
			return Report{}, err
		}
		maxDeviation, err := stats.Max(deviations)
		if err != nil {
			return Report{}, err
		}
		report.MedianDeviationM = median
		report.P95DeviationM = p95
		report.MaxDeviationM = maxDeviation
	}

	if len(remaining) > 0 {
		medianRemaining, err := stats.Median(remaining)
		if err != nil {
			return Report{}, err
		}
		report.MedianRemainingM = medianRemaining
	}

	return report, nil
}
