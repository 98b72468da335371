package gateway

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vnmchuo/llm-mock/internal/metrics"
)

// Auth checks the Authorization header against the single shared secret.
// The check runs before any other validation; failures get the standard
// unauthorized envelope. A request id is attached to every response so a
// client can correlate streamed and non-streamed calls.
func Auth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-ID", uuid.New().String())

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, errTypeUnauthorized, "Missing or invalid Authorization header")
				return
			}
			if strings.TrimPrefix(authHeader, "Bearer ") != apiKey {
				writeError(w, http.StatusUnauthorized, errTypeUnauthorized, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger emits one slog line per request. When logBodies is set the
// request body is included too (this is a local-dev mock; bodies hold no
// secrets worth redacting).
func RequestLogger(log *slog.Logger, logBodies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var body []byte
			if logBodies && r.Body != nil {
				body, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"latency_ms", time.Since(start).Milliseconds(),
			}
			if logBodies && len(body) > 0 {
				attrs = append(attrs, "request_body", string(body))
			}
			log.Info("request", attrs...)
		})
	}
}

// Recover maps panics in handlers to the internal-error envelope, message
// surfaced verbatim. Fine for a mock; a production server would redact.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				writeError(w, http.StatusInternalServerError, errTypeInternal, fmt.Sprint(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Metrics records per-endpoint counters via the configured recorder. Route
// patterns keep the cardinality bounded; unresolved routes fall back to the
// raw path.
func Metrics(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			endpoint := chi.RouteContext(r.Context()).RoutePattern()
			if endpoint == "" {
				endpoint = r.URL.Path
			}
			_ = rec.Record(r.Context(), r.Method+" "+endpoint, ww.Status(), time.Since(start))
		})
	}
}
