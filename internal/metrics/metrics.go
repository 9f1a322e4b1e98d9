package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for HTTP requests, enrichment lookups and validation failures,
// histograms for request, lookup and store operation durations,
// and a gauge for the number of stored employees.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	EnrichmentLookups  *prometheus.CounterVec
	EnrichmentDuration *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec
	StoreOpDuration    *prometheus.HistogramVec
	StoredEmployees    prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EnrichmentLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_enrichment_lookups_total",
			Help: "Total number of upstream enrichment lookups by source and outcome.",
		}, []string{"source", "status"}),
		EnrichmentDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_enrichment_lookup_duration_seconds",
			Help:    "Measures how long an upstream enrichment lookup takes.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		ValidationFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_validation_failures_total",
			Help: "Total number of rejected employee payloads by reason.",
		}, []string{"reason"}),
		StoreOpDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_store_operation_duration_seconds",
			Help:    "Duration of in-memory store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: 'list', 'get', 'create', 'update', 'delete'
		StoredEmployees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hestia_stored_employees",
			Help: "Number of employee records currently held in memory.",
		}),
	}

	metrics.EnrichmentLookups.WithLabelValues("picture", "success")
	metrics.EnrichmentLookups.WithLabelValues("picture", "failure")
	metrics.EnrichmentLookups.WithLabelValues("quote", "success")
	metrics.EnrichmentLookups.WithLabelValues("quote", "failure")

	return metrics
}
