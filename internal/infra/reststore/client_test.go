package reststore_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/resilience"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/reststore"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*reststore.Client, func()) {
	t.Helper()

	server := httptest.NewServer(handler)
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	cb := resilience.NewCircuitBreaker("reststore-test-" + t.Name())
	client := reststore.NewClient(
		&http.Client{Timeout: 5 * time.Second},
		server.URL,
		"test-key",
		cb,
		cfg,
		zap.NewNop(),
	)
	return client, server.Close
}

func TestGetSupplier(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/rest/v1/suppliers") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("missing apikey header")
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		json.NewEncoder(w).Encode([]domain.Supplier{{
			ID:          "sup-1",
			CompanyName: "Northern Timber",
			Status:      domain.StatusPending,
		}})
	})
	defer closeFn()

	supplier, err := client.GetSupplier(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if supplier.CompanyName != "Northern Timber" {
		t.Errorf("unexpected company name %s", supplier.CompanyName)
	}
}

func TestGetSupplier_NotFound(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// PostgREST answers an empty array for a filter with no rows.
		json.NewEncoder(w).Encode([]domain.Supplier{})
	})
	defer closeFn()

	_, err := client.GetSupplier(context.Background(), "missing")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetScore_NoRow(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Score{})
	})
	defer closeFn()

	score, err := client.GetScore(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if score != nil {
		t.Error("expected nil score for an empty result set")
	}
}

func TestUpsertScore_SendsMergeDuplicates(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("on_conflict"); got != "supplierId" {
			t.Errorf("expected on_conflict=supplierId, got %s", got)
		}
		if prefer := r.Header.Get("Prefer"); !strings.Contains(prefer, "merge-duplicates") {
			t.Errorf("expected merge-duplicates prefer header, got %s", prefer)
		}
		var scores []domain.Score
		var score domain.Score
		json.NewDecoder(r.Body).Decode(&score)
		scores = append(scores, score)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(scores)
	})
	defer closeFn()

	score, err := client.UpsertScore(context.Background(), &domain.Score{
		SupplierID:         "sup-1",
		OverallCreditScore: 80,
		Recommendation:     domain.RecommendationApproved,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if score.OverallCreditScore != 80 {
		t.Errorf("expected round-tripped score 80, got %d", score.OverallCreditScore)
	}
}

func TestUpdateRecommendation_NoRow(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Patch with no matching row returns an empty representation.
		json.NewEncoder(w).Encode([]domain.Score{})
	})
	defer closeFn()

	_, err := client.UpdateRecommendation(context.Background(), "sup-1", domain.RecommendationApproved)
	var noScore *domain.ErrNoScore
	if !errors.As(err, &noScore) {
		t.Fatalf("expected ErrNoScore, got %v", err)
	}
}

func TestDoRequest_ServerError(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer closeFn()

	_, err := client.ListSuppliers(context.Background())
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
}
