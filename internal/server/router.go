package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UnknownOlympus/hestia/internal/metrics"
)

// NewRouter wires the employee resource, the health check and the metrics endpoint.
func NewRouter(
	log *slog.Logger,
	employeesHandler *EmployeeHandler,
	health http.Handler,
	gatherer prometheus.Gatherer,
	appMetrics *metrics.Metrics,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log, appMetrics))
	router.Use(middleware.Recoverer)

	router.Method(http.MethodGet, "/healthz", health)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/employees", func(r chi.Router) {
		r.Get("/", employeesHandler.List)
		r.Post("/", employeesHandler.Create)
		r.Get("/{id}", employeesHandler.Get)
		r.Put("/{id}", employeesHandler.Update)
		r.Delete("/{id}", employeesHandler.Delete)
	})

	return router
}
