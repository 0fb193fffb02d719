package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks console HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts console HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BackendCalls counts calls to the backend API by endpoint and outcome (ok, app_error, transport_error).
	BackendCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_calls_total",
			Help: "Total number of backend API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// BackendDuration tracks backend API call latency by endpoint.
	BackendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Backend API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// DirectorySessions is the number of live directory sessions (in-memory).
	DirectorySessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "directory_sessions",
			Help: "Number of live groups/users directory sessions",
		},
	)
)

var (
	// Package names, group ids and app ids are opaque path segments; collapse the
	// segment after a known collection.
	idPathSegment = regexp.MustCompile(`/(packages|groups|users|apps)/[^/]+`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, BackendCalls, BackendDuration, DirectorySessions)
	})
}

// NormalizePath reduces cardinality by replacing the identifier after a collection with {id}.
// E.g. /packages/Vendor_App_1.0 -> /packages/{id}, /directory/groups/abc/members -> /directory/groups/{id}/members.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/$1/{id}")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBackendCall records one backend API call.
func RecordBackendCall(endpoint, outcome string, durationSeconds float64) {
	BackendCalls.WithLabelValues(endpoint, outcome).Inc()
	BackendDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// SetDirectorySessions sets the live directory session gauge.
func SetDirectorySessions(n int) {
	DirectorySessions.Set(float64(n))
}
