package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cuemby/wdog/wdog"
)

func TestExecBackendProbeReadyOnExitZero(t *testing.T) {
	b := NewExecBackend(10*time.Millisecond, "exec:/bin/true")
	result := b.probe(context.Background(), "127.0.0.1:9000")
	assert.Equal(t, wdog.StateReady, result.State)
}

func TestExecBackendProbeNotReadyOnNonzeroExit(t *testing.T) {
	b := NewExecBackend(10*time.Millisecond, "exec:/bin/false")
	result := b.probe(context.Background(), "127.0.0.1:9000")
	assert.Equal(t, wdog.StateNotReady, result.State)
}

func TestExecBackendProbeNotFoundOnMissingBinary(t *testing.T) {
	b := NewExecBackend(10*time.Millisecond, "exec:/no/such/binary")
	result := b.probe(context.Background(), "127.0.0.1:9000")
	assert.Equal(t, wdog.StateNotFound, result.State)
}

func TestExecBackendProbeNotFoundOnEmptyCommand(t *testing.T) {
	b := NewExecBackend(10*time.Millisecond, "exec:")
	result := b.probe(context.Background(), "127.0.0.1:9000")
	assert.Equal(t, wdog.StateNotFound, result.State)
}

func TestExecBackendPassesAddressToCommand(t *testing.T) {
	// /usr/bin/test -n <addr> exits 0 as long as the appended address is
	// a nonempty string, confirming the address reaches the command.
	b := NewExecBackend(10*time.Millisecond, "exec:/usr/bin/test -n")
	result := b.probe(context.Background(), "127.0.0.1:9000")
	assert.Equal(t, wdog.StateReady, result.State)
}
