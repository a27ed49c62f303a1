package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Requests sent to the portfolio REST backend",
		},
		[]string{"resource", "method", "status"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Latency of portfolio REST backend requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)
)

// ObserveBackend records one backend round trip. status is 0 when the request
// never produced a response.
func ObserveBackend(resource, method string, status int, d time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	backendRequestsTotal.WithLabelValues(resource, method, code).Inc()
	backendRequestDuration.WithLabelValues(resource, method).Observe(d.Seconds())
}
