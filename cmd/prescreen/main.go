package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/config"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/handler"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/cache"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/memstore"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/observability"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/resilience"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/reststore"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/port"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("store_backend", cfg.StoreBackend),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("demo_suppliers", cfg.DemoSuppliers),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "supplychain-prescreen")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	supplierCache := cache.New[*domain.Supplier](cfg.CacheTTL)

	// --- Store ---
	var store port.SupplierStore
	var seeder handler.DemoSeeder

	switch cfg.StoreBackend {
	case config.StoreRest:
		if cfg.StoreAPIURL == "" {
			logger.Fatal("STORE_API_URL is required for the rest backend")
		}
		logger.Info("using REST store backend", zap.String("store_api_url", cfg.StoreAPIURL))

		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		cb := resilience.NewCircuitBreaker("supplier-store")
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		store = reststore.NewClient(httpClient, cfg.StoreAPIURL, cfg.StoreAPIKey, cb, resilienceCfg, logger)

	default:
		logger.Info("using in-memory store backend")
		mem := memstore.New()
		if cfg.DemoSuppliers > 0 {
			now := time.Now()
			for i := 1; i <= cfg.DemoSuppliers; i++ {
				mem.Seed(fmt.Sprintf("sup-%03d", i), now)
			}
			logger.Info("demo suppliers seeded", zap.Int("count", cfg.DemoSuppliers))
		}
		store = mem
		seeder = mem
	}

	// --- Service ---
	svc := service.NewPrescreenService(store, supplierCache, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(svc, seeder, metrics, logger)

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
