package wdog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cuemby/wdog/pkg/log"
	"github.com/rs/zerolog"
)

// supervisorState tracks the STARTING -> RUNNING -> STOPPING -> STOPPED
// progression of the supervisor loop.
type supervisorState int32

const (
	stateStarting supervisorState = iota
	stateRunning
	stateStopping
	stateStopped
)

// InitialDestination is one preloaded, explicit destination handed to
// Create.
type InitialDestination struct {
	Address string
	Weight  float64
}

// Watchdog is the supervisor handle: the concurrent coordination engine
// that owns the destination registry, the configured backend, and the
// router weight changes are published to.
type Watchdog struct {
	mu           sync.Mutex
	destinations []*destination
	backend      Backend
	router       Router
	interval     time.Duration // 1.5x the router's own tick interval
	logger       zerolog.Logger
	state        supervisorState

	quit    chan struct{}
	stopped chan struct{}
}

// Create constructs a Watchdog, preloads every initial destination as
// explicit, runs a brief warmup, and starts the supervisor loop. If any
// preload fails, every destination added so far is torn down and the
// error is returned; no goroutines are left running.
func Create(ctx context.Context, backend Backend, router Router, routerInterval time.Duration, initial []InitialDestination) (*Watchdog, error) {
	w := &Watchdog{
		backend:  backend,
		router:   router,
		interval: time.Duration(float64(routerInterval) * 1.5),
		logger:   log.WithComponent("wdog"),
		state:    stateStarting,
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	for _, d := range initial {
		if _, err := w.ChangeDst(ctx, d.Address, d.Weight, true); err != nil {
			w.teardownAll()
			return nil, fmt.Errorf("wdog: preload %s: %w", d.Address, err)
		}
	}

	w.warmup(ctx)
	w.state = stateRunning
	go w.run(ctx)

	w.logger.Info().Int("destinations", len(initial)).Dur("interval", w.interval).Msg("watchdog started")
	return w, nil
}

// warmup runs the aggregator up to 10 times with a 100ms pause between
// attempts, stopping as soon as one tick observes fresh data. It is a
// no-op when there are no preloaded destinations.
func (w *Watchdog) warmup(ctx context.Context) {
	w.mu.Lock()
	n := len(w.destinations)
	w.mu.Unlock()
	if n == 0 {
		return
	}

	for i := 0; i < 10; i++ {
		if collected := w.aggregate(ctx); collected > 0 {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// run is the supervisor's own goroutine: it wakes on a ticker set to the
// watchdog's tick interval and runs the aggregator, until told to quit.
func (w *Watchdog) run(ctx context.Context) {
	defer close(w.stopped)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.quit:
			return
		case <-ticker.C:
			w.aggregate(ctx)
		}
	}
}

// Destroy performs an ordered, synchronous shutdown: it stops the
// supervisor loop, then stops and joins every remaining worker. No router
// calls occur after Destroy returns.
func (w *Watchdog) Destroy(ctx context.Context) {
	w.mu.Lock()
	if w.state == stateStopped || w.state == stateStopping {
		w.mu.Unlock()
		return
	}
	w.state = stateStopping
	w.mu.Unlock()

	close(w.quit)
	<-w.stopped

	w.teardownAll()

	w.mu.Lock()
	w.state = stateStopped
	w.mu.Unlock()

	w.logger.Info().Msg("watchdog stopped")
}

// teardownAll stops and joins every remaining worker, then empties the
// registry. Used both by Destroy and by Create's failure path.
func (w *Watchdog) teardownAll() {
	w.mu.Lock()
	dsts := w.destinations
	w.destinations = nil
	w.mu.Unlock()

	var wg sync.WaitGroup
	for _, d := range dsts {
		d.worker.Stop()
		wg.Add(1)
		go func(d *destination) {
			defer wg.Done()
			<-d.worker.Done()
		}(d)
	}
	wg.Wait()
}
