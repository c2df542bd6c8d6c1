package wdog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatchdog(backend Backend, router Router) *Watchdog {
	return &Watchdog{
		backend: backend,
		router:  router,
	}
}

func TestChangeDstAdd(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	idx, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Len(t, w.destinations, 1)
	assert.Equal(t, Explicit, w.destinations[0].origin)
	assert.Equal(t, 1.0, w.destinations[0].weightConfigured)
	assert.NotNil(t, backend.worker("10.0.0.1:80"))
}

func TestChangeDstAddIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	idx1, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)
	idx2, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)

	assert.Equal(t, idx1, idx2)
	assert.Len(t, w.destinations, 1)
	assert.Len(t, backend.started, 1, "second call must not spawn a new worker")
}

func TestChangeDstUpdatesWeight(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)
	_, err = w.ChangeDst(context.Background(), "10.0.0.1:80", 2.5, true)
	require.NoError(t, err)

	assert.Equal(t, 2.5, w.destinations[0].weightConfigured)
	assert.Len(t, backend.started, 1, "weight update must not spawn a new worker")
}

func TestChangeDstRemoveUnknownFails(t *testing.T) {
	w := newTestWatchdog(newFakeBackend(), newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", -1, true)
	assert.True(t, errors.Is(err, ErrNotPresent))
}

func TestChangeDstRemoveExplicitByExplicitCaller(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)

	_, err = w.ChangeDst(context.Background(), "10.0.0.1:80", -1, true)
	require.NoError(t, err)

	assert.True(t, backend.worker("10.0.0.1:80").isStopped())
	assert.Len(t, w.destinations, 1, "reaping happens in the aggregator, not here")
}

func TestChangeDstRemoveExplicitBySelfDiscoveredCallerIsUnauthorized(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)

	_, err = w.ChangeDst(context.Background(), "10.0.0.1:80", -1, false)
	require.NoError(t, err)

	assert.False(t, backend.worker("10.0.0.1:80").isStopped())
	assert.Equal(t, -1.0, w.destinations[0].weightConfigured)
}

func TestChangeDstRemoveSelfDiscoveredByAnyCaller(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, false)
	require.NoError(t, err)

	_, err = w.ChangeDst(context.Background(), "10.0.0.1:80", -1, false)
	require.NoError(t, err)

	assert.True(t, backend.worker("10.0.0.1:80").isStopped())
}

func TestChangeDstAddFailurePropagatesBackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.failAddr["10.0.0.1:80"] = true
	w := newTestWatchdog(backend, newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.Error(t, err)

	var startupErr *BackendStartupError
	assert.True(t, errors.As(err, &startupErr))
	assert.Len(t, w.destinations, 0)
}

func TestChangeDstTwoDistinctAddressesCreateTwoWorkers(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWatchdog(backend, newFakeRouter())

	_, err := w.ChangeDst(context.Background(), "10.0.0.1:80", 1.0, true)
	require.NoError(t, err)
	_, err = w.ChangeDst(context.Background(), "10.0.0.2:80", 1.0, true)
	require.NoError(t, err)

	assert.Len(t, w.destinations, 2)
	assert.Len(t, backend.started, 2)
}
