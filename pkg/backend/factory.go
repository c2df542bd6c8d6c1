package backend

import (
	"strings"
	"time"

	"github.com/cuemby/wdog/wdog"
)

// New builds a Backend from a config token of the form "<name>[:<spec>]".
// An empty token selects the null backend. Unknown tokens are a fatal
// startup error, matching the UNKNOWN_BACKEND disposition.
func New(token string, interval time.Duration) (wdog.Backend, error) {
	if token == "" {
		return wdog.NullBackend{}, nil
	}

	name, _, _ := strings.Cut(token, ":")
	switch name {
	case "tcp":
		return NewTCPBackend(interval), nil
	case "http":
		return NewHTTPBackend(interval, token), nil
	case "exec":
		return NewExecBackend(interval, token), nil
	case "grpc":
		return NewGRPCBackend(interval), nil
	default:
		return nil, wdog.ErrUnknownBackend
	}
}
