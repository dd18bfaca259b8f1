package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/skeinlab/skein/pkg/observability"
)

// Prometheus-backed implementations of the observability hooks.
// Metrics use promauto, which registers on the default registry at
// package init; promhttp exposes them on /metrics.

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skein_actions_total",
			Help: "Total number of actions dispatched to the editor",
		},
		[]string{"action"},
	)

	actionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skein_action_duration_seconds",
			Help:    "Duration of action reduction in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"action"},
	)

	layoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skein_layouts_total",
			Help: "Total number of layout passes, split by memo hit",
		},
		[]string{"cached"},
	)

	layoutNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skein_layout_nodes",
			Help: "Node count of the most recent layout pass",
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skein_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skein_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

type promEditorHooks struct{}

func (promEditorHooks) OnDispatch(action string, d time.Duration) {
	actionsTotal.WithLabelValues(action).Inc()
	actionDuration.WithLabelValues(action).Observe(d.Seconds())
}

func (promEditorHooks) OnLayout(nodeCount int, cached bool, d time.Duration) {
	label := "false"
	if cached {
		label = "true"
	}
	layoutsTotal.WithLabelValues(label).Inc()
	layoutNodes.Set(float64(nodeCount))
}

type promServerHooks struct{}

func (promServerHooks) OnRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// InstallMetrics registers the Prometheus-backed hooks. Call once at
// startup, before the editor starts dispatching.
func InstallMetrics() {
	observability.SetEditorHooks(promEditorHooks{})
	observability.SetServerHooks(promServerHooks{})
}
