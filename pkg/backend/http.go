package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cuemby/wdog/wdog"
)

// HTTPBackend probes a destination with an HTTP GET, selected by the
// config token "http" or "http:<path>". Grounded on the teacher's
// HTTPChecker, generalized from a boolean healthy result to the four
// check states: a 2xx response is READY, any other status is AVOID
// (alive but shouldn't take traffic), and a transport failure is
// NOTFOUND.
type HTTPBackend struct {
	Interval time.Duration
	Timeout  time.Duration
	Path     string
	Client   *http.Client
}

// NewHTTPBackend parses a "http" or "http:<path>" config spec into an
// HTTPBackend ticking at interval with a 10 second request timeout.
func NewHTTPBackend(interval time.Duration, spec string) *HTTPBackend {
	path := "/"
	if _, after, ok := strings.Cut(spec, ":"); ok && after != "" {
		path = after
	}
	return &HTTPBackend{
		Interval: interval,
		Timeout:  10 * time.Second,
		Path:     path,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *HTTPBackend) Start(ctx context.Context, addr string) (wdog.Worker, error) {
	return startPollingWorker(addr, b.Interval, b.Timeout, b.probe), nil
}

func (b *HTTPBackend) Close() error { return nil }

func (b *HTTPBackend) probe(ctx context.Context, addr string) wdog.CheckResult {
	start := time.Now()

	url := "http://" + addr + b.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}
	defer resp.Body.Close()

	state := wdog.StateAvoid
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		state = wdog.StateReady
	}

	return wdog.CheckResult{State: state, Latency: time.Since(start)}
}
