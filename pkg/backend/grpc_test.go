package backend

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthsrv "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/cuemby/wdog/wdog"
)

func startHealthServer(t *testing.T, status healthpb.HealthCheckResponse_ServingStatus) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	hs := healthsrv.NewServer()
	hs.SetServingStatus("", status)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go srv.Serve(ln)
	t.Cleanup(srv.Stop)

	return ln.Addr().String()
}

func TestGRPCBackendProbeReadyWhenServing(t *testing.T) {
	addr := startHealthServer(t, healthpb.HealthCheckResponse_SERVING)

	b := NewGRPCBackend(10 * time.Millisecond)
	result := b.probe(context.Background(), addr)
	assert.Equal(t, wdog.StateReady, result.State)
}

func TestGRPCBackendProbeAvoidWhenNotServing(t *testing.T) {
	addr := startHealthServer(t, healthpb.HealthCheckResponse_NOT_SERVING)

	b := NewGRPCBackend(10 * time.Millisecond)
	result := b.probe(context.Background(), addr)
	assert.Equal(t, wdog.StateAvoid, result.State)
}

func TestGRPCBackendProbeNotFoundWhenUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	b := NewGRPCBackend(10 * time.Millisecond)
	result := b.probe(context.Background(), addr)
	assert.Equal(t, wdog.StateNotFound, result.State)
}
