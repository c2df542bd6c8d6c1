package wdog

import (
	"context"
	"time"

	"github.com/cuemby/wdog/pkg/metrics"
)

// aggregate runs one aggregator tick under the supervisor lock: a drain
// pass over every destination followed by a reverse-order reap pass that
// makes weight decisions, applies the hysteresis gate, and retires
// terminated workers. It returns the number of destinations that had
// fresh data this tick.
func (w *Watchdog) aggregate(ctx context.Context) int {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.AggregateDuration)

	w.mu.Lock()
	defer w.mu.Unlock()

	collected, maxLatency := w.drain()
	w.reap(ctx, maxLatency)
	w.updateDestinationMetricsLocked()
	metrics.ProbesCollectedTotal.Add(float64(collected))
	return collected
}

// drain is pass 1: pull each worker's fresh result into its destination's
// pending slot, smoothing latency for READY results and tracking the
// tick's slowest READY latency, and flags self-discovered destinations
// that just went NOTFOUND for removal.
func (w *Watchdog) drain() (collected int, maxLatency time.Duration) {
	for _, d := range w.destinations {
		result, ok := drainWorker(d.worker)
		if !ok {
			d.pending.ready = false
			continue
		}

		collected++
		d.pending.ready = true
		d.pending.state = result.State
		if result.Others != d.pending.others {
			d.memberChanged = true
		}
		d.pending.others = result.Others

		if result.State == StateReady {
			d.pending.latency = smoothLatency(d.pending.latency, result.Latency)
			if d.pending.latency > maxLatency {
				maxLatency = d.pending.latency
			}
		}

		if result.State == StateNotFound && d.origin == SelfDiscovered {
			d.logger.Info().Msg("self-discovered destination not found, requesting removal")
			d.worker.Stop()
		}
	}
	return collected, maxLatency
}

// reap is pass 2: iterated in reverse index order so that reaping a
// terminated worker via swap-with-last never disturbs an index still to
// be visited.
func (w *Watchdog) reap(ctx context.Context, maxLatency time.Duration) {
	for i := len(w.destinations) - 1; i >= 0; i-- {
		d := w.destinations[i]

		if workerJoined(d.worker) {
			metrics.WorkersReapedTotal.Inc()
			d.logger.Debug().Msg("probe worker reaped")
			last := len(w.destinations) - 1
			w.destinations[i] = w.destinations[last]
			w.destinations = w.destinations[:last]
			continue
		}

		var newWeight float64
		if d.pending.ready {
			newWeight = weightForResult(d.pending.state, d.weightConfigured, d.pending.latency, maxLatency)
		} else {
			// Heard nothing from the backend this tick; hold.
			newWeight = 0
		}

		if !shouldPublish(newWeight, d.weightEffective) {
			continue
		}

		if err := w.router.ChangeDst(ctx, d.address, newWeight); err != nil {
			metrics.RouterUpdatesTotal.WithLabelValues("refused").Inc()
			d.logger.Warn().Err(err).Float64("weight", newWeight).Msg("router refused weight update")
			continue
		}

		metrics.RouterUpdatesTotal.WithLabelValues("accepted").Inc()
		d.weightEffective = newWeight
		metrics.WeightEffective.WithLabelValues(d.address).Set(newWeight)
	}
}

// updateDestinationMetricsLocked recomputes the destination-count gauge
// from scratch each tick; called with the supervisor lock held.
func (w *Watchdog) updateDestinationMetricsLocked() {
	metrics.DestinationsTotal.Reset()
	for _, d := range w.destinations {
		state := d.pending.state.String()
		if !d.pending.ready {
			state = "stale"
		}
		metrics.DestinationsTotal.WithLabelValues(d.origin.String(), state).Inc()
	}
}
