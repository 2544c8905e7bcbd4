// Package cooldown is the host-side reference implementation of the
// recalculation-cooldown policy the specification places outside the
// core: once a deviation is flagged, the host should not re-request a
// route from the adapter on every subsequent tick, only at most once per
// cooldown window (spec section 4.5's determinism note: "time-sensitive
// policy ... lives in the host").
package cooldown

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates how often the host may act on a detected deviation by
// re-requesting a route, using a token-bucket rate limiter with burst 1:
// at most one recalculation per window, with no burst accumulation
// beyond the first.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter that permits one recalculation per window.
func New(window time.Duration) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Every(window), 1)}
}

// Allow reports whether a recalculation may proceed right now, consuming
// the token if so.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a recalculation may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
