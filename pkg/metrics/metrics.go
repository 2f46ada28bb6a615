package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_registrations_total",
			Help: "Total number of successful user registrations",
		},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	PasswordChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_password_changes_total",
			Help: "Total number of successful password changes",
		},
	)

	TokenRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_token_refreshes_total",
			Help: "Total number of access tokens minted via refresh",
		},
	)

	TokenRevocationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_token_revocations_total",
			Help: "Total number of refresh tokens blacklisted",
		},
	)
)

// RecordHTTPMetrics records the counter and duration for a finished request.
func RecordHTTPMetrics(service, method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)

	HttpRequestsTotal.WithLabelValues(service, method, path, statusStr).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, statusStr).Observe(duration.Seconds())
}
