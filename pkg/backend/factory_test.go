package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/wdog/wdog"
)

func TestNewSelectsBackendByToken(t *testing.T) {
	cases := []struct {
		token   string
		wantT   interface{}
		wantNil bool
	}{
		{"", wdog.NullBackend{}, false},
		{"tcp", &TCPBackend{}, false},
		{"http", &HTTPBackend{}, false},
		{"http:/healthz", &HTTPBackend{}, false},
		{"exec:/bin/true", &ExecBackend{}, false},
		{"grpc", &GRPCBackend{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			b, err := New(tc.token, 100*time.Millisecond)
			require.NoError(t, err)
			assert.IsType(t, tc.wantT, b)
		})
	}
}

func TestNewRejectsUnknownToken(t *testing.T) {
	_, err := New("carrier-pigeon", 100*time.Millisecond)
	assert.ErrorIs(t, err, wdog.ErrUnknownBackend)
}

func TestNewHTTPBackendParsesPath(t *testing.T) {
	b := NewHTTPBackend(time.Second, "http:/healthz")
	assert.Equal(t, "/healthz", b.Path)

	b = NewHTTPBackend(time.Second, "http")
	assert.Equal(t, "/", b.Path)
}

func TestNewExecBackendParsesCommand(t *testing.T) {
	b := NewExecBackend(time.Second, "exec:/usr/bin/check.sh --fast")
	assert.Equal(t, []string{"/usr/bin/check.sh", "--fast"}, b.Command)
}
