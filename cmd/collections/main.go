package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/cnab/layouts"
	"github.com/boddenberg/pj-collections-go/internal/config"
	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/handler"
	"github.com/boddenberg/pj-collections-go/internal/infra/archive"
	"github.com/boddenberg/pj-collections-go/internal/infra/cache"
	"github.com/boddenberg/pj-collections-go/internal/infra/observability"
	"github.com/boddenberg/pj-collections-go/internal/infra/resilience"
	"github.com/boddenberg/pj-collections-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel, zap.String("service", "pj-collections"))
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.String("remittance_dir", cfg.RemittanceDir),
		zap.Bool("archive_enabled", cfg.ArchiveEndpoint != ""),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "pj-collections")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	brCodeCache := cache.New[*domain.BRCode](cfg.CacheTTL)
	defer brCodeCache.Close()

	opts := []service.Option{
		service.WithConcurrency(cfg.MaxConcurrency),
		service.WithRemittanceDir(cfg.RemittanceDir, cfg.RemittanceEOL),
		service.WithLayout(layouts.NewCNAB400(cfg.LayoutName, cfg.LayoutBankCode, cfg.LayoutBankName, cfg.LayoutWallets)),
	}

	// --- Archive ---
	if cfg.ArchiveEndpoint != "" {
		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		store, err := archive.NewS3(archive.Config{
			Endpoint:        cfg.ArchiveEndpoint,
			AccessKeyID:     cfg.ArchiveAccessKey,
			SecretAccessKey: cfg.ArchiveSecretKey,
			Bucket:          cfg.ArchiveBucket,
			UseSSL:          cfg.ArchiveUseSSL,
			Region:          cfg.ArchiveRegion,
			Prefix:          cfg.ArchivePrefix,
		}, resilience.NewCircuitBreaker("archive"), resilienceCfg)
		if err != nil {
			logger.Fatal("failed to create archive client", zap.Error(err))
		}
		opts = append(opts, service.WithArchiver(store))
		logger.Info("remittance archive enabled",
			zap.String("endpoint", cfg.ArchiveEndpoint),
			zap.String("bucket", cfg.ArchiveBucket),
		)
	} else {
		logger.Warn("remittance archive disabled: ARCHIVE_ENDPOINT not set")
	}

	// --- Services ---
	collectionSvc := service.NewCollectionService(brCodeCache, metrics, logger, opts...)
	logger.Info("remittance layouts registered",
		zap.Strings("layouts", collectionSvc.Layouts()),
		zap.Strings("wallets", cfg.LayoutWallets),
	)

	// --- Router ---
	router := handler.NewRouter(collectionSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
