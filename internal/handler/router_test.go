package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/handler"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/cache"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/memstore"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/observability"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/service"

	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	svc := service.NewPrescreenService(
		store,
		cache.New[*domain.Supplier](5*time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	return handler.NewRouter(svc, store, observability.NewMetrics(), zap.NewNop()), store
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCreateSupplier(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/suppliers", domain.CreateSupplierRequest{
		CompanyName:      "Delta Electronics Supply",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 4,
		BusinessType:     "manufacturing",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var supplier domain.Supplier
	if err := json.NewDecoder(rec.Body).Decode(&supplier); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if supplier.ID == "" {
		t.Error("expected a generated supplier id")
	}
	if supplier.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %s", supplier.Status)
	}
}

func TestCreateSupplier_Invalid(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/suppliers", domain.CreateSupplierRequest{
		RegistrationType: domain.RegistrationLtd,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing company name, got %d", rec.Code)
	}
}

func TestGetSupplier_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/suppliers/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestScoreLifecycle(t *testing.T) {
	router, store := newTestRouter(t)
	store.Seed("sup-001", time.Now())

	// No score yet.
	rec := doRequest(t, router, http.MethodGet, "/v1/suppliers/sup-001/score", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before computation, got %d", rec.Code)
	}

	// Compute.
	rec = doRequest(t, router, http.MethodPost, "/v1/suppliers/sup-001/score", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var score domain.Score
	if err := json.NewDecoder(rec.Body).Decode(&score); err != nil {
		t.Fatalf("decode score: %v", err)
	}
	if score.OverallCreditScore < 0 || score.OverallCreditScore > 100 {
		t.Errorf("overall score out of range: %d", score.OverallCreditScore)
	}
	if !domain.ValidRecommendation(score.Recommendation) {
		t.Errorf("unexpected recommendation %s", score.Recommendation)
	}

	// Read back.
	rec = doRequest(t, router, http.MethodGet, "/v1/suppliers/sup-001/score", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Pricing is now derivable.
	rec = doRequest(t, router, http.MethodGet, "/v1/suppliers/sup-001/pricing", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for pricing, got %d: %s", rec.Code, rec.Body.String())
	}
	var terms domain.PricingTerms
	if err := json.NewDecoder(rec.Body).Decode(&terms); err != nil {
		t.Fatalf("decode pricing: %v", err)
	}
	if terms.AdvanceRateBand == "" || terms.InterestRatePct < 1.0 {
		t.Errorf("incomplete pricing terms: %+v", terms)
	}

	// RFM projection.
	rec = doRequest(t, router, http.MethodGet, "/v1/suppliers/sup-001/score/rfm", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for rfm, got %d", rec.Code)
	}
	var view domain.RFMView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode rfm: %v", err)
	}
	if view.Recency < 1 || view.Recency > 5 {
		t.Errorf("recency out of range: %d", view.Recency)
	}
}

func TestComputeScore_UnknownSupplier(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/suppliers/missing/score", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestOverrideRecommendation(t *testing.T) {
	router, store := newTestRouter(t)
	store.Seed("sup-001", time.Now())

	rec := doRequest(t, router, http.MethodPost, "/v1/suppliers/sup-001/score", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("compute failed: %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/suppliers/sup-001/recommendation",
		domain.OverrideRecommendationRequest{Recommendation: domain.RecommendationRejected})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var score domain.Score
	if err := json.NewDecoder(rec.Body).Decode(&score); err != nil {
		t.Fatalf("decode score: %v", err)
	}
	if score.Recommendation != domain.RecommendationRejected {
		t.Errorf("expected rejected, got %s", score.Recommendation)
	}
}

func TestOverrideRecommendation_Invalid(t *testing.T) {
	router, store := newTestRouter(t)
	store.Seed("sup-001", time.Now())

	rec := doRequest(t, router, http.MethodPost, "/v1/suppliers/sup-001/recommendation",
		domain.OverrideRecommendationRequest{Recommendation: "maybe"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSeedEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/dev/seed",
		domain.SeedRequest{SupplierID: "sup-demo"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/suppliers/sup-demo", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected seeded supplier to be readable, got %d", rec.Code)
	}
}

func TestSeedEndpoint_NoSeeder(t *testing.T) {
	store := memstore.New()
	svc := service.NewPrescreenService(
		store,
		cache.New[*domain.Supplier](5*time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	router := handler.NewRouter(svc, nil, observability.NewMetrics(), zap.NewNop())

	rec := doRequest(t, router, http.MethodPost, "/v1/dev/seed",
		domain.SeedRequest{SupplierID: "sup-demo"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a seeder, got %d", rec.Code)
	}
}

func TestScoringMetricsEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	store.Seed("sup-001", time.Now())

	rec := doRequest(t, router, http.MethodGet, "/v1/metrics/scoring", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snapshot domain.ScoringMetrics
	if err := json.NewDecoder(rec.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
}

func TestInputCollections(t *testing.T) {
	router, store := newTestRouter(t)
	store.Seed("sup-001", time.Now())

	for _, path := range []string{
		"/v1/suppliers/sup-001/financials",
		"/v1/suppliers/sup-001/transactions",
		"/v1/suppliers/sup-001/documents",
	} {
		rec := doRequest(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}
