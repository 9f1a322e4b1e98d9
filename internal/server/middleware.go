package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/UnknownOlympus/hestia/internal/metrics"
)

// requestLogger logs every request and records its outcome in the HTTP metrics.
// The route label uses the chi route pattern so identifiers do not blow up cardinality.
func requestLogger(log *slog.Logger, appMetrics *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				duration := time.Since(startTime)
				route := "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				appMetrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
				appMetrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

				log.DebugContext(r.Context(), "Request served",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", duration),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
