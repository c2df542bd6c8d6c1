package wdog

import (
	"context"

	"github.com/cuemby/wdog/pkg/log"
	"github.com/google/uuid"
)

// ChangeDst is the registry mutator (C4): a single entry point for
// add/remove/update, serialized against concurrent callers and the
// supervisor loop by the watchdog's own lock.
//
// weight < 0 requests removal. Authorization for removal depends on the
// destination's origin: a self-discovered destination may be removed by
// any caller; an explicit destination may be removed only by an explicit
// caller (an unauthorized attempt instead marks it unavailable).
func (w *Watchdog) ChangeDst(ctx context.Context, address string, weight float64, explicit bool) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexOfLocked(address)

	switch {
	case idx < 0 && weight < 0:
		return -1, ErrNotPresent

	case idx < 0:
		return w.addLocked(ctx, address, weight, explicit)

	case weight < 0:
		return w.removeLocked(idx, explicit), nil

	case weight != w.destinations[idx].weightConfigured:
		w.destinations[idx].weightConfigured = weight
		return idx, nil

	default:
		return idx, nil
	}
}

func (w *Watchdog) indexOfLocked(address string) int {
	for i, d := range w.destinations {
		if d.address == address {
			return i
		}
	}
	return -1
}

// addLocked spawns a worker for address and, only once the worker has
// confirmed it started (or failed to), inserts the new record. On
// failure no goroutine is left running and the registry is unchanged.
func (w *Watchdog) addLocked(ctx context.Context, address string, weight float64, explicit bool) (int, error) {
	worker, err := w.backend.Start(ctx, address)
	if err != nil {
		return -1, &BackendStartupError{Addr: address, Err: err}
	}

	origin := Explicit
	if !explicit {
		origin = SelfDiscovered
	}

	d := &destination{
		address:          address,
		weightConfigured: weight,
		origin:           origin,
		worker:           worker,
	}

	if origin == SelfDiscovered {
		d.discoveryID = uuid.New().String()
		d.logger = log.WithDiscoveryID(d.discoveryID).With().
			Str("address", address).
			Str("origin", origin.String()).
			Logger()
	} else {
		d.logger = log.WithAddress(address).With().
			Str("origin", origin.String()).
			Logger()
	}

	w.destinations = append(w.destinations, d)
	d.logger.Info().Float64("weight", weight).Msg("destination added")
	return len(w.destinations) - 1, nil
}

// removeLocked applies the removal-authorization rule. If authorized, it
// signals the worker to quit; actual reaping happens in the aggregator's
// reap pass on a later tick. If unauthorized, it marks the destination
// unavailable without removing it.
func (w *Watchdog) removeLocked(idx int, explicit bool) int {
	d := w.destinations[idx]

	authorized := explicit || d.origin == SelfDiscovered
	if !authorized {
		d.weightConfigured = -1
		d.logger.Info().Msg("removal unauthorized, marking unavailable")
		return idx
	}

	d.logger.Info().Msg("destination scheduled for removal")
	d.worker.Stop()
	return idx
}
