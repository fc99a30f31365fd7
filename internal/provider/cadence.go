package provider

import (
	"time"

	"golang.org/x/time/rate"
)

// ProgressCadenceCount is the conversation-count cadence from spec.md
// §4.1: "every 100 conversations, or every 100ms of wall time".
const ProgressCadenceCount = 100

// ProgressCadenceInterval is the wall-time cadence from spec.md §4.1.
const ProgressCadenceInterval = 100 * time.Millisecond

// ProgressGate throttles the progress callback to the earlier of every
// ProgressCadenceCount conversations or every ProgressCadenceInterval of
// wall time, built on golang.org/x/time/rate the way a request limiter
// would gate outbound calls -- here gating calls to the caller-supplied
// callback instead of an outbound request. Shared by every provider
// adapter's Stream implementation.
type ProgressGate struct {
	limiter       *rate.Limiter
	sinceLastFire int
}

// NewProgressGate returns a gate ready to throttle a single Stream call.
func NewProgressGate() *ProgressGate {
	// Burst of 1: only one callback fires per allowed tick; Limit lets a
	// tick occur once per ProgressCadenceInterval.
	return &ProgressGate{
		limiter: rate.NewLimiter(rate.Every(ProgressCadenceInterval), 1),
	}
}

// Tick records one more successfully yielded conversation and reports
// whether the progress callback should fire now for the given running
// count.
func (g *ProgressGate) Tick(count int) bool {
	g.sinceLastFire++
	if g.sinceLastFire >= ProgressCadenceCount {
		g.sinceLastFire = 0
		g.limiter.AllowN(time.Now(), 1) // resync the interval window
		return true
	}
	if g.limiter.Allow() {
		g.sinceLastFire = 0
		return true
	}
	return false
}
