package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ScansTotal           prometheus.Counter
	ScanFailures         *prometheus.CounterVec
	ExtractionConfidence prometheus.Histogram
}

// NewMetrics creates and registers the metric set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flyerscan",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flyerscan",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "flyerscan",
			Name:      "scans_total",
			Help:      "Flyer scans attempted.",
		}),
		ScanFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flyerscan",
			Name:      "scan_failures_total",
			Help:      "Failed scans by reason.",
		}, []string{"reason"}),
		ExtractionConfidence: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flyerscan",
			Name:      "extraction_confidence",
			Help:      "Confidence scores of completed extractions.",
			Buckets:   []float64{90, 91.5, 93, 94.5, 96, 97.5, 99, 100},
		}),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
