package backend

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/cuemby/wdog/wdog"
)

// GRPCBackend probes a destination using the standard gRPC health
// checking protocol. Selected by the config token "grpc". SERVING maps
// to READY, NOT_SERVING to AVOID, and any RPC failure (including
// UNIMPLEMENTED, meaning the destination never registered a health
// service) to NOTFOUND.
type GRPCBackend struct {
	Interval time.Duration
	Timeout  time.Duration
}

// NewGRPCBackend returns a GRPCBackend ticking at interval with a 5
// second RPC timeout.
func NewGRPCBackend(interval time.Duration) *GRPCBackend {
	return &GRPCBackend{Interval: interval, Timeout: 5 * time.Second}
}

func (b *GRPCBackend) Start(ctx context.Context, addr string) (wdog.Worker, error) {
	return startPollingWorker(addr, b.Interval, b.Timeout, b.probe), nil
}

func (b *GRPCBackend) Close() error { return nil }

func (b *GRPCBackend) probe(ctx context.Context, addr string) wdog.CheckResult {
	start := time.Now()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return wdog.CheckResult{State: wdog.StateNotFound, Latency: time.Since(start)}
	}

	state := wdog.StateAvoid
	if resp.Status == healthpb.HealthCheckResponse_SERVING {
		state = wdog.StateReady
	}

	return wdog.CheckResult{State: state, Latency: time.Since(start)}
}
