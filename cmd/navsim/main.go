// Command navsim drives a *navigation.Controller with a sequence of
// simulated location fixes and prints the resulting TripState at every
// tick. It can optionally read real fixes from a serial GPS receiver
// instead of simulating them, exercising the same controller code path
// either way.
package main

import (
	"flag"
	"time"

	"github.com/asgard/wayfarer/deviation"
	"github.com/asgard/wayfarer/navigation"
	"github.com/asgard/wayfarer/navlog"
	"github.com/asgard/wayfarer/navroute"
	"github.com/asgard/wayfarer/stepadvance"
)

func main() {
	serialPort := flag.String("serial-port", "", "serial device to read NMEA GGA fixes from (e.g. /dev/ttyUSB0); simulates a track when empty")
	baudRate := flag.Int("baud", 9600, "serial baud rate")
	tickInterval := flag.Duration("tick", time.Second, "interval between simulated fixes (ignored when reading from serial)")
	flag.Parse()

	logger := navlog.New()

	route, err := demoRoute()
	if err != nil {
		logger.Error("navsim: failed to build demo route: %v", err)
		return
	}

	controller := navigation.New(route, navigation.Config{
		StepAdvance:            stepadvance.Mode{Kind: stepadvance.RelativeLineStringDistance, MinHorizontalAccuracyM: 16, AutomaticAdvanceDistanceM: 10},
		RouteDeviationTracking: deviation.Tracking{Kind: deviation.StaticThreshold, MinHorizontalAccuracyM: 16, MaxAcceptableDeviationM: 35},
	})

	var fixes <-chan navroute.UserLocation
	if *serialPort != "" {
		fixes, err = readSerialFixes(*serialPort, *baudRate, logger)
		if err != nil {
			logger.Error("navsim: failed to open serial port: %v", err)
			return
		}
	} else {
		fixes = simulateFixes(route, *tickInterval)
	}

	var state navigation.TripState
	started := false
	for fix := range fixes {
		if !started {
			state = controller.InitialState(fix)
			started = true
		} else {
			state = controller.UpdateUserLocation(state, fix)
		}
		logTripState(logger, state)
		if state.Kind == navigation.Complete {
			return
		}
	}
}

func logTripState(logger *navlog.Logger, state navigation.TripState) {
	if state.Kind == navigation.Complete {
		logger.Info("navsim: trip complete")
		return
	}
	instruction := "(no instruction)"
	if state.VisualInstruction != nil {
		instruction = state.VisualInstruction.Primary.Text
	}
	logger.Info("navsim: distance_to_maneuver=%.1fm off_route=%v steps_remaining=%d instruction=%q",
		state.DistanceToNextManeuverM, state.Deviation.OffRoute, len(state.RemainingSteps), instruction)
}
