package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/palegrove/heritage-map-etl/internal/adapter/amap"
	httpadapter "github.com/palegrove/heritage-map-etl/internal/adapter/http"
	kafkaadapter "github.com/palegrove/heritage-map-etl/internal/adapter/kafka"
	"github.com/palegrove/heritage-map-etl/internal/config"
	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/palegrove/heritage-map-etl/internal/observability"
	"github.com/palegrove/heritage-map-etl/internal/pipeline"
	"github.com/palegrove/heritage-map-etl/internal/store"
)

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via AMAP_ENABLED / AMAP_KEY).
	var geocoder domain.Geocoder
	if cfg.AmapEnabled {
		client := amap.NewClient(cfg.AmapKey, cfg.AmapTimeout, metrics, logger)
		geocoder = amap.NewCachedGeocoder(client, cfg.AmapCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("amap geocoding enabled", "cache_size", cfg.AmapCacheSize, "timeout", cfg.AmapTimeout)
	} else {
		logger.Info("amap geocoding disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	snapshot := store.NewMemory(metrics)
	transformer := pipeline.NewTransformer(geocoder, metrics, logger)

	// Each batch goes to the sink topic and the in-memory snapshot the HTTP
	// API serves from.
	loader := pipeline.MultiLoader{writer, snapshot}

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, snapshot, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
