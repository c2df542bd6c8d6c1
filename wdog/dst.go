package wdog

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Origin distinguishes destinations an operator configured explicitly
// from ones the watchdog learned about via peer gossip.
type Origin int

const (
	Explicit Origin = iota
	SelfDiscovered
)

func (o Origin) String() string {
	if o == SelfDiscovered {
		return "self_discovered"
	}
	return "explicit"
}

// pendingResult is the latest check result copied out of a destination's
// worker, plus the bookkeeping needed to smooth latency and detect gossip
// churn across ticks.
type pendingResult struct {
	ready   bool
	state   CheckState
	latency time.Duration
	others  string
}

// destination is one entry in the watchdog's registry (C2 of the design:
// address, configured/effective weight, origin, pending result, and the
// worker context backing it).
type destination struct {
	address          string
	weightConfigured float64
	weightEffective  float64
	origin           Origin
	pending          pendingResult
	memberChanged    bool
	worker           Worker

	// discoveryID correlates log lines for a self-discovered destination
	// across its lifetime; it plays no role in identity (identity is the
	// address alone, per the data model).
	discoveryID string

	logger zerolog.Logger
}

// weightTolerance is the hysteresis band: a new weight is only published
// to the router if it differs from the prior effective weight by more
// than this fraction, or drops to zero or below.
const weightTolerance = 0.1

// weightForResult computes the candidate weight for one destination from
// its freshly-drained check state, per the weight table in the component
// design: NOTFOUND/NOTREADY drain it, AVOID zeroes it, READY scales its
// configured weight by how its latency compares to the tick's slowest
// READY destination (faster nodes get more share).
func weightForResult(state CheckState, configured float64, latency, maxLatency time.Duration) float64 {
	switch state {
	case StateNotFound, StateNotReady:
		return -1
	case StateAvoid:
		return 0
	case StateReady:
		if maxLatency > 0 && latency > 0 {
			return configured * float64(maxLatency) / float64(latency)
		}
		return configured
	default:
		return 0
	}
}

// shouldPublish applies the hysteresis gate: a weight that hasn't changed
// at all never republishes; otherwise publish when the new weight is
// non-positive (draining or unavailable), or when it differs from the
// previously published weight by more than weightTolerance. The ratio is
// taken as old/new, matching the original implementation; when old is
// zero and new is positive this evaluates to -1, whose magnitude always
// exceeds the tolerance, so a transition away from a zero weight is
// always published without a special case.
func shouldPublish(newWeight, oldWeight float64) bool {
	if newWeight == oldWeight {
		return false
	}
	if newWeight <= 0 {
		return true
	}
	return math.Abs(oldWeight/newWeight-1) > weightTolerance
}

// smoothLatency applies first-order smoothing: the arithmetic mean of the
// newly observed latency and the previously stored one. Called only when
// the fresh result is READY; stale or non-READY results keep the last
// stored latency untouched.
func smoothLatency(previous, fresh time.Duration) time.Duration {
	if previous == 0 {
		return fresh
	}
	return (previous + fresh) / 2
}
