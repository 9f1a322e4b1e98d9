package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/enrich"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	employeeRepo := repository.NewEmployeeRepository(appMetrics)

	httpClient := client.CreateHTTPClient(logger)
	pictures := enrich.NewPictureLookup(httpClient, cfg.Enrichment.Picture.BaseURL,
		cfg.Enrichment.Picture.MaxPage, cfg.Enrichment.Picture.ImageSize)
	quotes := enrich.NewQuoteLookup(httpClient, cfg.Enrichment.Quote.URL)
	enricher := enrich.NewEnricher(logger, appMetrics, pictures, quotes, cfg.Enrichment.Timeout)

	staff := employees.NewStaff(logger, employeeRepo, enricher, appMetrics, employees.SystemClock{})

	health := server.NewHealthChecker(employeeRepo, []server.Upstream{
		{Name: "picture_service", URL: cfg.Enrichment.Picture.BaseURL},
		{Name: "quote_service", URL: cfg.Enrichment.Quote.URL},
	}, logger)
	router := server.NewRouter(logger, server.NewEmployeeHandler(staff, logger), health, reg, appMetrics)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "env", cfg.Env, "port", cfg.HTTP.Port)

	if err := server.Run(ctx, logger, router, cfg.HTTP.Port,
		cfg.HTTP.ReadHeaderTimeout, cfg.HTTP.ShutdownTimeout); err != nil {
		logger.ErrorContext(ctx, "API server failed", sl.Err(err))
		stop()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
