// Package backend provides the concrete probe plugins selected by the
// watchdog config token: tcp, http, exec, and grpc, plus the factory that
// builds one from a config string.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/cuemby/wdog/wdog"
)

// probeFunc performs one probe cycle against addr and returns the result.
type probeFunc func(ctx context.Context, addr string) wdog.CheckResult

// pollingWorker is the generic polling worker shared by every plugin in
// this package: it runs probeFn on a ticker and forwards results on a
// buffered channel until Stop is called. It plays the role of the
// original design's per-destination worker context, with the
// mutex-and-condvar rendezvous replaced by channels.
type pollingWorker struct {
	results chan wdog.CheckResult
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// startPollingWorker spawns the worker goroutine and blocks until it has
// confirmed it is running, mirroring the original liveness handshake.
func startPollingWorker(addr string, interval, timeout time.Duration, probeFn probeFunc) *pollingWorker {
	w := &pollingWorker{
		results: make(chan wdog.CheckResult, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	started := make(chan struct{})
	go w.run(addr, interval, timeout, probeFn, started)
	<-started

	return w
}

func (w *pollingWorker) run(addr string, interval, timeout time.Duration, probeFn probeFunc, started chan struct{}) {
	defer close(w.done)
	close(started)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), timeout)
			result := probeFn(probeCtx, addr)
			cancel()
			w.publish(result)
		}
	}
}

// publish delivers result, dropping any unread result still sitting in
// the buffer first so the aggregator always sees the most recent cycle.
func (w *pollingWorker) publish(result wdog.CheckResult) {
	select {
	case w.results <- result:
	default:
		select {
		case <-w.results:
		default:
		}
		select {
		case w.results <- result:
		default:
		}
	}
}

func (w *pollingWorker) Results() <-chan wdog.CheckResult { return w.results }

func (w *pollingWorker) Stop() {
	w.once.Do(func() { close(w.stop) })
}

func (w *pollingWorker) Done() <-chan struct{} { return w.done }
