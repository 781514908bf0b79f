// Package metrics provides Prometheus metrics for HTTP server monitoring and
// the ADR check engine:
//   - http_request_total: counter with method, path, and status labels
//   - http_request_duration_seconds: histogram with method and path labels
//   - http_request_in_flight: gauge for concurrent requests
//   - adr_checks_total: counter with a safe/unsafe outcome label
//   - rate_limiter_buckets_total: gauge of tracked client buckets
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ADRChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adr_checks_total",
			Help: "Total drug interaction checks by outcome",
		},
		[]string{"outcome"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (client IPs currently tracked)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ADRChecksTotal)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
