package backend

import (
	"context"
	"net"
	"time"

	"github.com/cuemby/wdog/wdog"
)

// TCPBackend probes a destination by dialing it. Grounded on the
// teacher's TCPChecker: a bare connect/close cycle, no data exchanged.
type TCPBackend struct {
	Interval time.Duration
	Timeout  time.Duration
}

// NewTCPBackend returns a TCPBackend ticking at interval with a 5 second
// dial timeout.
func NewTCPBackend(interval time.Duration) *TCPBackend {
	return &TCPBackend{Interval: interval, Timeout: 5 * time.Second}
}

func (b *TCPBackend) Start(ctx context.Context, addr string) (wdog.Worker, error) {
	return startPollingWorker(addr, b.Interval, b.Timeout, b.probe), nil
}

func (b *TCPBackend) Close() error { return nil }

func (b *TCPBackend) probe(ctx context.Context, addr string) wdog.CheckResult {
	start := time.Now()

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}
	conn.Close()

	return wdog.CheckResult{State: wdog.StateReady, Latency: time.Since(start)}
}
