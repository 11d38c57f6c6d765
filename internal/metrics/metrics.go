// Package metrics holds the Prometheus collectors for the checker. The
// collectors make a silently-degrading whitelist integration visible without
// failing the run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts completed invocations by final status.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventcheck_runs_total",
		Help: "Completed check invocations by final status.",
	}, []string{"status"})

	// RunDuration observes end-to-end invocation time.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eventcheck_run_duration_seconds",
		Help:    "End-to-end duration of one check invocation.",
		Buckets: prometheus.DefBuckets,
	})

	// MissingNames reports the zero-count cells found by the latest
	// completed pass, by category. Set on every pass, like the results
	// snapshot, so a recovered category reads zero again.
	MissingNames = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "eventcheck_missing_names",
		Help: "Expected (name, platform) cells with zero observed events in the latest pass, by category.",
	}, []string{"category"})

	// WhitelistFetchFailures counts absorbed whitelist fetch errors, by
	// category.
	WhitelistFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventcheck_whitelist_fetch_failures_total",
		Help: "Whitelist fetches that failed and degraded to an empty list, by category.",
	}, []string{"category"})

	// AlertFailures counts absorbed alert delivery errors.
	AlertFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventcheck_alert_failures_total",
		Help: "Alert deliveries that failed and were absorbed.",
	})
)
