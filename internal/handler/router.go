package handler

import (
	"net/http"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/observability"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// seeder may be nil when the configured store backend does not support
// demo seeding; the /v1/dev/seed endpoint then answers 503.
func NewRouter(svc *service.PrescreenService, seeder DemoSeeder, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. Suppliers
		// =============================================
		r.Get("/suppliers", listSuppliersHandler(svc, logger))
		r.Post("/suppliers", createSupplierHandler(svc, logger))
		r.Get("/suppliers/{supplierId}", getSupplierHandler(svc, logger))

		// =============================================
		// 2. Scoring inputs
		// =============================================
		r.Get("/suppliers/{supplierId}/financials", listFinancialsHandler(svc, logger))
		r.Get("/suppliers/{supplierId}/transactions", listTransactionsHandler(svc, logger))
		r.Get("/suppliers/{supplierId}/documents", listDocumentsHandler(svc, logger))

		// =============================================
		// 3. Scoring & recommendation
		// =============================================
		r.Post("/suppliers/{supplierId}/score", computeScoreHandler(svc, logger))
		r.Get("/suppliers/{supplierId}/score", getScoreHandler(svc, logger))
		r.Get("/suppliers/{supplierId}/score/rfm", getRFMHandler(svc, logger))
		r.Post("/suppliers/{supplierId}/recommendation", overrideRecommendationHandler(svc, logger))

		// =============================================
		// 4. Pricing
		// =============================================
		r.Get("/suppliers/{supplierId}/pricing", getPricingHandler(svc, logger))

		// =============================================
		// 5. Metrics
		// =============================================
		r.Get("/metrics/scoring", scoringMetricsHandler(metrics, logger))

		// =============================================
		// Dev Tools (testing helpers)
		// =============================================
		r.Post("/dev/seed", seedHandler(seeder, logger))
	})

	return r
}

// ============================================================
// Probes & metrics
// ============================================================

func healthzHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "prescreen-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		_, err := svc.ListSuppliers(ctx)
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		if err != nil {
			status = "degraded"
		}
		services = append(services, domain.ServiceHealth{
			Name: "store", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func scoringMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := metrics.GetScoringSnapshot()
		writeJSON(w, http.StatusOK, snapshot)
	}
}
