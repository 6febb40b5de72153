// Package metrics wires the Prometheus collectors that observe the
// engine's hot path. Grounded on luxfi-dex/pkg/metrics/lux_metrics.go's
// direct client_golang usage; the teacher only carried this dependency
// indirectly (via sarama's own metrics), so this promotes it to a
// direct, exercised dependency (see SPEC_FULL.md §2, DESIGN.md).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters/gauges/histograms the engine updates
// once per command.
type Metrics struct {
	OrdersProcessed prometheus.Counter
	TradesExecuted  prometheus.Counter
	CommandErrors   prometheus.Counter
	QueueDepth      prometheus.Gauge
	DispatchLatency prometheus.Histogram
}

// New registers and returns a fresh set of collectors against reg.
// cmd/matchd passes its own prometheus.NewRegistry() and serves it on
// --metrics-addr.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OrdersProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "matchd_orders_processed_total",
			Help: "Total orders added to rest on the book (one per ORDER_ADDED event).",
		}),
		TradesExecuted: f.NewCounter(prometheus.CounterOpts{
			Name: "matchd_trades_executed_total",
			Help: "Total trade events emitted by the book.",
		}),
		CommandErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "matchd_command_errors_total",
			Help: "Total commands rejected with an ERROR event.",
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "matchd_command_queue_depth",
			Help: "Current number of buffered commands in the engine queue.",
		}),
		DispatchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchd_dispatch_latency_seconds",
			Help:    "Time to apply one command to the book and render its events.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
}
