package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

type StorePinger interface {
	Ping(ctx context.Context) error
}

// Upstream is an external service whose reachability is reported by the health check.
type Upstream struct {
	Name string
	URL  string
}

// HealthChecker reports the store state and the reachability of the enrichment
// upstreams. Upstream problems are reported but do not fail the check, because
// enrichment is optional.
type HealthChecker struct {
	store      StorePinger
	upstreams  []Upstream
	httpClient *http.Client
	log        *slog.Logger
}

func NewHealthChecker(store StorePinger, upstreams []Upstream, log *slog.Logger) *HealthChecker {
	clientTO := 5
	return &HealthChecker{
		store:      store,
		upstreams:  upstreams,
		httpClient: &http.Client{Timeout: time.Duration(clientTO) * time.Second},
		log:        log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	if err = h.store.Ping(req.Context()); err != nil {
		status["store"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: store ping", "error", err)
	} else {
		status["store"] = "ok"
	}

	upstreamStatus := make([]string, len(h.upstreams))
	var group errgroup.Group
	for i, upstream := range h.upstreams {
		group.Go(func() error {
			upstreamStatus[i] = h.checkUpstream(req.Context(), upstream)
			return nil
		})
	}
	_ = group.Wait() // checks report through upstreamStatus

	for i, upstream := range h.upstreams {
		status[upstream.Name] = upstreamStatus[i]
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}

func (h *HealthChecker) checkUpstream(ctx context.Context, upstream Upstream) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, upstream.URL, nil)
	if err != nil {
		h.log.WarnContext(ctx, "Health check failed: invalid upstream URL", "upstream", upstream.Name, "error", err)
		return "unreachable"
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.log.WarnContext(ctx, "Health check failed: upstream unreachable",
			"upstream", upstream.Name, "host", upstream.URL, "error", err)
		return "unreachable"
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			h.log.WarnContext(ctx, "Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		h.log.WarnContext(ctx, "Health check failed: upstream returned error status",
			"upstream", upstream.Name, "host", upstream.URL, "status_code", resp.StatusCode)
		return "degraded"
	}

	return "ok"
}
