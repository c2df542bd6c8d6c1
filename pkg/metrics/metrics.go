package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DestinationsTotal tracks the number of destinations by origin
	// (explicit/self_discovered) and the check state drained this tick,
	// or "stale" for a destination with no fresh result this tick.
	DestinationsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wdog_destinations_total",
			Help: "Total number of destinations by origin and check state",
		},
		[]string{"origin", "state"},
	)

	// WeightEffective is the weight most recently accepted by the router
	// for a given destination address.
	WeightEffective = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wdog_weight_effective",
			Help: "Weight most recently accepted by the router, by destination address",
		},
		[]string{"address"},
	)

	// AggregateDuration measures one aggregator tick (drain + reap passes).
	AggregateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wdog_aggregate_duration_seconds",
			Help:    "Time taken by one aggregator tick",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RouterUpdatesTotal counts router.ChangeDst outcomes.
	RouterUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wdog_router_updates_total",
			Help: "Total number of router change_dst calls by result",
		},
		[]string{"result"}, // "accepted" | "refused"
	)

	// ProbesCollectedTotal accumulates the return value of each aggregator
	// drain pass (the number of destinations with fresh data that tick).
	ProbesCollectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wdog_probes_collected_total",
			Help: "Total number of fresh probe results collected across all ticks",
		},
	)

	// WorkersReapedTotal counts probe workers joined and torn down.
	WorkersReapedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wdog_workers_reaped_total",
			Help: "Total number of probe workers joined and their contexts freed",
		},
	)
)

func init() {
	prometheus.MustRegister(DestinationsTotal)
	prometheus.MustRegister(WeightEffective)
	prometheus.MustRegister(AggregateDuration)
	prometheus.MustRegister(RouterUpdatesTotal)
	prometheus.MustRegister(ProbesCollectedTotal)
	prometheus.MustRegister(WorkersReapedTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram. This is the only
// Timer usage the watchdog needs: aggregate.go wraps it around every
// tick to populate wdog_aggregate_duration_seconds.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}
