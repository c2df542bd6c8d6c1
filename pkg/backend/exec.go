package backend

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/cuemby/wdog/wdog"
)

// ExecBackend probes a destination by running a local command once per
// cycle, selected by the config token "exec:<command>". Grounded on the
// teacher's ExecChecker: exit 0 is READY, a nonzero exit is NOTREADY
// (alive but not serviceable), and a command that fails to start at all
// is NOTFOUND.
type ExecBackend struct {
	Interval time.Duration
	Timeout  time.Duration
	Command  []string
}

// NewExecBackend parses a "exec:<command> [args...]" config spec.
func NewExecBackend(interval time.Duration, spec string) *ExecBackend {
	_, command, _ := strings.Cut(spec, ":")
	return &ExecBackend{
		Interval: interval,
		Timeout:  10 * time.Second,
		Command:  strings.Fields(command),
	}
}

func (b *ExecBackend) Start(ctx context.Context, addr string) (wdog.Worker, error) {
	return startPollingWorker(addr, b.Interval, b.Timeout, b.probe), nil
}

func (b *ExecBackend) Close() error { return nil }

func (b *ExecBackend) probe(ctx context.Context, addr string) wdog.CheckResult {
	start := time.Now()

	if len(b.Command) == 0 {
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}

	cmd := exec.CommandContext(ctx, b.Command[0], append(append([]string{}, b.Command[1:]...), addr)...)
	err := cmd.Run()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return wdog.CheckResult{State: wdog.StateNotReady, Latency: time.Since(start)}
		}
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}

	return wdog.CheckResult{State: wdog.StateReady, Latency: time.Since(start)}
}
