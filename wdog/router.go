package wdog

import "context"

// Router is the single external collaborator the watchdog publishes
// weight changes to. It models the one call the original design makes
// into the load balancer's router: change_dst(address, weight).
//
// A weight of 0 asks the router to drain the destination; a weight of -1
// asks the router to stop using it entirely. Refusal (a non-nil error)
// leaves the watchdog's effective weight at its prior value; the
// aggregator will retry on the next tick that crosses the hysteresis
// gate, it never retries ChangeDst directly.
type Router interface {
	ChangeDst(ctx context.Context, address string, weight float64) error
}
