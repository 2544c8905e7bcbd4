// Package telemetry wraps a *navigation.Controller with Prometheus
// metrics (registered through promauto) and OpenTelemetry spans. The
// navigation core itself stays free of both: this package is strictly a
// host-side decorator.
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/asgard/wayfarer/navigation"
	"github.com/asgard/wayfarer/navroute"
)

var tracer = otel.Tracer("github.com/asgard/wayfarer/telemetry")

// Metrics holds the Prometheus instruments this package records against.
type Metrics struct {
	TicksTotal          *prometheus.CounterVec
	StepAdvancesTotal   prometheus.Counter
	DeviationsTotal     prometheus.Counter
	TripsCompletedTotal prometheus.Counter
	DistanceToManeuverM prometheus.Histogram
}

// NewMetrics registers a fresh set of instruments against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TicksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wayfarer",
			Subsystem: "navigation",
			Name:      "ticks_total",
			Help:      "Total controller ticks, by resulting trip state kind.",
		}, []string{"state"}),
		StepAdvancesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wayfarer",
			Subsystem: "navigation",
			Name:      "step_advances_total",
			Help:      "Total route step advances.",
		}),
		DeviationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wayfarer",
			Subsystem: "navigation",
			Name:      "deviations_total",
			Help:      "Total ticks in which the user was detected off-route.",
		}),
		TripsCompletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wayfarer",
			Subsystem: "navigation",
			Name:      "trips_completed_total",
			Help:      "Total trips that reached the Complete state.",
		}),
		DistanceToManeuverM: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wayfarer",
			Subsystem: "navigation",
			Name:      "distance_to_maneuver_meters",
			Help:      "Distance to the next maneuver at each tick.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
	}
}

// Instrumented wraps a *navigation.Controller, recording metrics and a
// span for every tick. It offers the same three methods as
// *navigation.Controller, each taking an additional leading
// context.Context that carries the span.
type Instrumented struct {
	controller *navigation.Controller
	metrics    *Metrics
}

// Wrap decorates controller with metrics recorded against m.
func Wrap(controller *navigation.Controller, m *Metrics) *Instrumented {
	return &Instrumented{controller: controller, metrics: m}
}

// InitialState delegates to the wrapped controller and records a tick.
func (i *Instrumented) InitialState(ctx context.Context, location navroute.UserLocation) navigation.TripState {
	ctx, span := tracer.Start(ctx, "navigation.InitialState")
	defer span.End()
	state := i.controller.InitialState(location)
	i.record(ctx, state)
	return state
}

// UpdateUserLocation delegates to the wrapped controller and records a
// tick, including a step-advance count when the remaining step count
// decreased.
func (i *Instrumented) UpdateUserLocation(ctx context.Context, state navigation.TripState, location navroute.UserLocation) navigation.TripState {
	ctx, span := tracer.Start(ctx, "navigation.UpdateUserLocation")
	defer span.End()

	before := len(state.RemainingSteps)
	next := i.controller.UpdateUserLocation(state, location)

	if len(next.RemainingSteps) < before {
		i.metrics.StepAdvancesTotal.Add(float64(before - len(next.RemainingSteps)))
	}
	i.record(ctx, next)
	return next
}

// AdvanceToNextStep delegates to the wrapped controller and records a
// forced step advance.
func (i *Instrumented) AdvanceToNextStep(ctx context.Context, state navigation.TripState) navigation.TripState {
	ctx, span := tracer.Start(ctx, "navigation.AdvanceToNextStep")
	defer span.End()
	next := i.controller.AdvanceToNextStep(state)
	if state.Kind == navigation.Navigating {
		i.metrics.StepAdvancesTotal.Inc()
	}
	i.record(ctx, next)
	return next
}

func (i *Instrumented) record(ctx context.Context, state navigation.TripState) {
	span := trace.SpanFromContext(ctx)

	switch state.Kind {
	case navigation.Complete:
		i.metrics.TicksTotal.WithLabelValues("complete").Inc()
		i.metrics.TripsCompletedTotal.Inc()
		span.SetAttributes(attribute.String("trip_state", "complete"))
	case navigation.Navigating:
		i.metrics.TicksTotal.WithLabelValues("navigating").Inc()
		i.metrics.DistanceToManeuverM.Observe(state.DistanceToNextManeuverM)
		if state.Deviation.OffRoute {
			i.metrics.DeviationsTotal.Inc()
		}
		span.SetAttributes(
			attribute.String("trip_state", "navigating"),
			attribute.Float64("distance_to_maneuver_m", state.DistanceToNextManeuverM),
			attribute.Bool("off_route", state.Deviation.OffRoute),
			attribute.Int("remaining_steps", len(state.RemainingSteps)),
		)
	}
}
