package wdog

import (
	"context"
	"sync"
	"time"
)

// CheckState is the tagged outcome of one probe cycle against a
// destination.
type CheckState int

const (
	// StateNotFound means the destination is unreachable or gone.
	StateNotFound CheckState = iota
	// StateNotReady means the destination is alive but not serviceable.
	StateNotReady
	// StateAvoid means the destination is alive but should be drained.
	StateAvoid
	// StateReady means the destination is alive and ready to serve.
	StateReady
)

func (s CheckState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateAvoid:
		return "avoid"
	case StateNotReady:
		return "not_ready"
	default:
		return "not_found"
	}
}

// CheckResult is what a probe worker reports for one cycle.
type CheckResult struct {
	State CheckState
	// Latency is only meaningful when State is StateReady.
	Latency time.Duration
	// Others is a gossip payload listing peers the probed destination
	// knows about, used to discover new destinations. Empty if the
	// backend has nothing to report.
	Others string
}

// Worker is the live handle a Backend hands back for one destination. It
// replaces the original design's mutex-and-condvar rendezvous object with
// channels: Results is drained non-blockingly by the aggregator in place
// of a locked copy, and Done plays the role of the "joined" flag.
type Worker interface {
	// Results delivers fresh probe results. A worker that has nothing new
	// to report (the null backend, or a plugin between cycles) may leave
	// it empty; it must never block on a send for longer than it blocks
	// probing.
	Results() <-chan CheckResult

	// Stop asks the worker to terminate at its next opportunity. It must
	// not block, and must be safe to call more than once.
	Stop()

	// Done is closed once the worker has fully terminated and is safe to
	// reap.
	Done() <-chan struct{}
}

// Backend spawns and tears down probe workers for a configured check
// type (tcp, http, exec, grpc, or the built-in null backend).
type Backend interface {
	// Start spawns a worker probing addr. It must not return until the
	// worker has either started successfully or failed to start; on
	// failure it returns a non-nil error and leaves no goroutine running.
	Start(ctx context.Context, addr string) (Worker, error)

	// Close releases any backend-wide resources. It does not touch
	// workers already started; those are stopped individually.
	Close() error
}

// NullBackend is used when no watchdog check is configured. Its workers
// never report a result, so the aggregator holds every destination's
// weight at its "stale" disposition (effective weight 0) until the
// destination is removed.
type NullBackend struct{}

func (NullBackend) Start(ctx context.Context, addr string) (Worker, error) {
	return newNullWorker(), nil
}

func (NullBackend) Close() error { return nil }

type nullWorker struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newNullWorker() *nullWorker {
	w := &nullWorker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *nullWorker) run() {
	defer close(w.done)
	<-w.stop
}

// Results never sends: the null backend has nothing to report.
func (w *nullWorker) Results() <-chan CheckResult { return nil }

func (w *nullWorker) Stop() {
	w.once.Do(func() { close(w.stop) })
}

func (w *nullWorker) Done() <-chan struct{} { return w.done }
