// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of requests sent to the pizza service",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of pizza service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_session_events_total",
			Help: "Session store operations by backend and event",
		},
		[]string{"backend", "event"},
	)

	CheckoutsBlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_blocked_total",
			Help: "Checkout attempts rejected before reaching the service",
		},
	)
)

// Session event labels.
const (
	SessionEventLoad  = "load"
	SessionEventSet   = "set"
	SessionEventClear = "clear"
	SessionEventError = "error"
)

// StatusLabel is the status label for requests that never got a response.
const StatusLabel = "network_error"
