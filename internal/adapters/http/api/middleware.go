// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/loanscope/pkg/metrics"
)

// HeaderRequestID echoes the caller's request id, or a generated one.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// MetricsMiddleware tags the request with an id and records Prometheus
// metrics for it under endpoint.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, durationMs)

		if rec.status >= http.StatusBadRequest {
			errorType, severity := errorClass(rec.status)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, errorType)
			metrics.RecordErrorByType(errorType, severity)
			metrics.RecordErrorLatency("http", errorType, durationMs)
		}
	}
}

// errorClass buckets a failing status the way classify assigns them.
func errorClass(status int) (errorType, severity string) {
	switch status {
	case http.StatusNotFound:
		return "not_found", "low"
	case http.StatusRequestEntityTooLarge:
		return "too_large", "medium"
	case http.StatusBadGateway:
		return "upstream_failure", "high"
	case http.StatusGatewayTimeout:
		return "timeout", "high"
	case statusClientClosedRequest:
		return "canceled", "low"
	}
	if status >= http.StatusInternalServerError {
		return "server_error", "high"
	}
	return "client_error", "medium"
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
