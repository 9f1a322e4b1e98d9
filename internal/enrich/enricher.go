package enrich

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// Lookup is a single upstream source of an optional employee field.
type Lookup interface {
	Name() string
	Fetch(ctx context.Context) (string, error)
}

// Enricher runs the picture and quote lookups side by side.
type Enricher struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	picture Lookup
	quote   Lookup
	timeout time.Duration
}

func NewEnricher(log *slog.Logger, metrics *metrics.Metrics, picture, quote Lookup, timeout time.Duration) *Enricher {
	return &Enricher{
		log:     log.With(slog.String("division", "enrichment")),
		metrics: metrics,
		picture: picture,
		quote:   quote,
		timeout: timeout,
	}
}

// Enrich waits for both lookups to settle and returns whatever succeeded.
// It never fails: a lookup that errors or runs past the timeout leaves its field nil.
func (e *Enricher) Enrich(ctx context.Context) models.Enrichment {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var result models.Enrichment
	var group errgroup.Group

	group.Go(func() error {
		result.PictureURL = e.BestEffort(ctx, e.picture)
		return nil
	})
	group.Go(func() error {
		result.Quote = e.BestEffort(ctx, e.quote)
		return nil
	})

	_ = group.Wait() // lookups never return errors

	return result
}

// BestEffort runs lookup and converts its outcome into an optional value.
// Failures are logged and counted, never returned.
func (e *Enricher) BestEffort(ctx context.Context, lookup Lookup) *string {
	source := lookup.Name()
	startTime := time.Now()
	defer func() {
		e.metrics.EnrichmentDuration.WithLabelValues(source).Observe(time.Since(startTime).Seconds())
	}()

	value, err := lookup.Fetch(ctx)
	if err != nil {
		e.log.WarnContext(ctx, "Upstream lookup failed, field left empty",
			sl.Op("Enricher.BestEffort"), slog.String("source", source), sl.Err(err))
		e.metrics.EnrichmentLookups.WithLabelValues(source, "failure").Inc()
		return nil
	}

	e.metrics.EnrichmentLookups.WithLabelValues(source, "success").Inc()
	e.log.DebugContext(ctx, "Upstream lookup succeeded", slog.String("source", source))

	return &value
}
