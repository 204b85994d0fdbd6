package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"coachboard/internal/metrics"
)

// RequestIDHeader carries a per-request correlation id to the backend
const RequestIDHeader = "X-Request-ID"

// roundTripperFunc adapts a function to http.RoundTripper
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// MetricsTransport wraps an http.RoundTripper with Prometheus metrics, a
// request id header and debug logging of every outgoing request
func MetricsTransport(logger *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if next == nil {
			next = http.DefaultTransport
		}
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			// RoundTrippers must not modify the caller's request
			if r.Header.Get(RequestIDHeader) == "" {
				r = r.Clone(r.Context())
				r.Header.Set(RequestIDHeader, uuid.NewString())
			}

			resp, err := next.RoundTrip(r)

			duration := time.Since(start)
			statusStr := metrics.StatusNetworkError
			if err == nil {
				statusStr = strconv.Itoa(resp.StatusCode)
			}
			metrics.HTTPClientRequestsTotal.WithLabelValues(r.Method, statusStr).Inc()
			metrics.HTTPClientRequestDuration.WithLabelValues(r.Method, statusStr).Observe(duration.Seconds())

			logger.Debug("http_request",
				"method", r.Method,
				"url", r.URL.Redacted(),
				"status", statusStr,
				"request_id", r.Header.Get(RequestIDHeader),
				"duration_ms", duration.Milliseconds())

			return resp, err
		})
	}
}

// WrapTransport is a convenience function to wrap a RoundTripper with metrics
func WrapTransport(logger *slog.Logger, next http.RoundTripper) http.RoundTripper {
	return MetricsTransport(logger)(next)
}
