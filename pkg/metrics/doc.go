/*
Package metrics provides Prometheus metrics for the watchdog.

All metrics are registered at package init and updated inline by the
aggregator at the end of each tick — there is no separate polling
collector, since a second ticker would race the hysteresis gate in
package wdog.

# Metrics Catalog

wdog_destinations_total{origin,state}: gauge, destinations grouped by
origin (explicit/self_discovered) and the check state drained this tick,
or "stale" when no fresh result arrived this tick.

wdog_weight_effective{address}: gauge, the weight currently in force at
the router for a destination.

wdog_aggregate_duration_seconds: histogram, one aggregator tick.

wdog_router_updates_total{result}: counter, router.ChangeDst outcomes
("accepted"/"refused").

wdog_probes_collected_total: counter, fresh probe results observed.

wdog_workers_reaped_total: counter, probe workers joined and torn down.

# Usage

	timer := metrics.NewTimer()
	collected := wdog.aggregate()
	timer.ObserveDuration(metrics.AggregateDuration)
	metrics.ProbesCollectedTotal.Add(float64(collected))
*/
package metrics
