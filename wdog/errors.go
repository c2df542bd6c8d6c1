package wdog

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by ChangeDst and by the backend factory in
// pkg/backend. Callers should compare with errors.Is.
var (
	// ErrNotPresent is returned when a caller asks to remove a destination
	// that is not in the registry.
	ErrNotPresent = errors.New("wdog: destination not present")

	// ErrUnknownBackend is returned by pkg/backend.New when the configured
	// backend token does not match any known backend.
	ErrUnknownBackend = errors.New("wdog: unknown backend")
)

// BackendStartupError wraps a failure reported by a backend while starting
// a probe worker for a destination. It corresponds to WORKER_STARTUP_FAILED
// in the error taxonomy.
type BackendStartupError struct {
	Addr string
	Err  error
}

func (e *BackendStartupError) Error() string {
	return fmt.Sprintf("wdog: backend startup failed for %s: %v", e.Addr, e.Err)
}

func (e *BackendStartupError) Unwrap() error {
	return e.Err
}
