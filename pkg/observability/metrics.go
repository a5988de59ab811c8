// Package observability exposes the Prometheus metrics of the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billscan_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billscan_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "billscan_http_active_requests",
			Help: "In-flight HTTP requests.",
		},
	)

	scansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billscan_scans_total",
			Help: "Bill scans by input method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	scanConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "billscan_scan_confidence",
			Help:    "Confidence scores of completed analyses.",
			Buckets: []float64{5, 15, 25, 40, 55, 70, 85, 100},
		},
	)
)

// RecordHTTPRequest updates the request counter and latency histogram.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackInFlight marks a request as active and returns its release func.
func TrackInFlight() func() {
	httpActiveRequests.Inc()
	return httpActiveRequests.Dec
}

// RecordScan counts one scan attempt by input method and outcome.
func RecordScan(method, outcome string) {
	scansTotal.WithLabelValues(method, outcome).Inc()
}

// ObserveConfidence records the confidence score of a completed analysis.
func ObserveConfidence(score int) {
	scanConfidence.Observe(float64(score))
}
