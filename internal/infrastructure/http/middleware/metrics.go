package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trailguard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	accessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailguard_access_decisions_total",
			Help: "Access decisions by action, outcome and reason",
		},
		[]string{"action", "allowed", "reason"},
	)
	passwordAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trailguard_password_attempts_total",
			Help: "Password verification attempts by outcome",
		},
		[]string{"status"},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordDecision counts an access decision.
func RecordDecision(action string, allowed bool, reason string) {
	accessDecisions.WithLabelValues(action, strconv.FormatBool(allowed), reason).Inc()
}

// RecordPasswordAttempt counts a verification outcome.
func RecordPasswordAttempt(status string) {
	passwordAttempts.WithLabelValues(status).Inc()
}
