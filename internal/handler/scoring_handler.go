package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Scoring & recommendation
// ============================================================

func computeScoreHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/suppliers/{supplierId}/score")
		defer span.End()

		score, err := svc.ComputeScore(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, score)
	}
}

func getScoreHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}/score")
		defer span.End()

		score, err := svc.GetScore(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, score)
	}
}

func overrideRecommendationHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/suppliers/{supplierId}/recommendation")
		defer span.End()

		var req domain.OverrideRecommendationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		score, err := svc.OverrideRecommendation(ctx, chi.URLParam(r, "supplierId"), req.Recommendation)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, score)
	}
}

// ============================================================
// Derived read models
// ============================================================

func getPricingHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}/pricing")
		defer span.End()

		terms, err := svc.GetPricing(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, terms)
	}
}

func getRFMHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}/score/rfm")
		defer span.End()

		view, err := svc.GetRFM(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// ============================================================
// Dev tools
// ============================================================

// DemoSeeder populates a supplier and its scoring inputs with
// deterministic demo data. Implemented by the memory store only.
type DemoSeeder interface {
	Seed(supplierID string, now time.Time) *domain.Supplier
}

func seedHandler(seeder DemoSeeder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/dev/seed")
		defer span.End()

		if seeder == nil {
			writeError(w, http.StatusServiceUnavailable, "demo seeding requires the memory store backend")
			return
		}

		var req domain.SeedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.SupplierID == "" {
			writeError(w, http.StatusBadRequest, "supplierId is required")
			return
		}

		supplier := seeder.Seed(req.SupplierID, time.Now())
		logger.Info("demo supplier seeded", zap.String("supplier_id", req.SupplierID))
		writeJSON(w, http.StatusCreated, supplier)
	}
}
