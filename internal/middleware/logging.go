package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/rentkeeper/internal/metrics"
)

// RequestInfo is shared by the middleware chain for one request.
type RequestInfo struct {
	ID      string
	OwnerID int64 // zero when anonymous
}

func requestInfo(ctx context.Context) *RequestInfo {
	info, _ := ctx.Value(RequestInfoKey).(*RequestInfo)
	return info
}

// GetRequestID returns the request id assigned by RequestLogger, or "".
func GetRequestID(ctx context.Context) string {
	if info := requestInfo(ctx); info != nil {
		return info.ID
	}
	return ""
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// RequestLogger logs every request with a generated request id, its status,
// duration and the owner id once the session is resolved.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		info := &RequestInfo{ID: uuid.NewString()}
		w.Header().Set("X-Request-ID", info.ID)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), RequestInfoKey, info)))

		status := rec.code()
		attrs := []any{
			"request_id", info.ID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"owner_id", info.OwnerID,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			slog.Error("Request failed", attrs...)
		case status >= 400:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	})
}

// Metrics records request counts and latency per route pattern. It must wrap
// the ServeMux directly so the matched pattern is visible after dispatch.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(route, r.Method, rec.code(), time.Since(start))
		})
	}
}
