// Package service provides the business logic layer: the pre-screening
// engine that turns supplier, financial, transaction and document records
// into sub-scores, a composite credit score, a recommendation, and derived
// pricing terms.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/observability"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/prescreen")

// PrescreenService orchestrates score computation and pricing derivation
// over an injected supplier store.
type PrescreenService struct {
	store   port.SupplierStore
	cache   port.Cache[*domain.Supplier]
	metrics *observability.Metrics
	logger  *zap.Logger

	// one lock per supplier so concurrent recomputations of the same
	// supplier serialize their read-compute-upsert cycle
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPrescreenService creates the pre-screening service with all
// dependencies injected.
func NewPrescreenService(store port.SupplierStore, cache port.Cache[*domain.Supplier], metrics *observability.Metrics, logger *zap.Logger) *PrescreenService {
	return &PrescreenService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *PrescreenService) supplierLock(supplierID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[supplierID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[supplierID] = l
	}
	return l
}

// ============================================================
// Suppliers
// ============================================================

// GetSupplier fetches a supplier profile, using the cache when warm.
func (s *PrescreenService) GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.GetSupplier")
	defer span.End()

	cacheKey := fmt.Sprintf("supplier:%s", supplierID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("supplier")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("supplier")

	supplier, err := s.store.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, supplier)
	return supplier, nil
}

func (s *PrescreenService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.ListSuppliers")
	defer span.End()

	return s.store.ListSuppliers(ctx)
}

// CreateSupplier validates and persists a new supplier in pending status.
func (s *PrescreenService) CreateSupplier(ctx context.Context, req *domain.CreateSupplierRequest) (*domain.Supplier, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.CreateSupplier")
	defer span.End()

	if req.CompanyName == "" {
		return nil, &domain.ErrValidation{Field: "companyName", Message: "required"}
	}
	if req.YearsOfOperation < 0 {
		return nil, &domain.ErrValidation{Field: "yearsOfOperation", Message: "must be non-negative"}
	}
	switch req.RegistrationType {
	case domain.RegistrationPLC, domain.RegistrationLtd, domain.RegistrationLP, domain.RegistrationOther:
	default:
		return nil, &domain.ErrValidation{Field: "registrationType", Message: "must be PLC, Ltd, LP or other"}
	}

	supplier := &domain.Supplier{
		ID:               uuid.New().String(),
		CompanyName:      req.CompanyName,
		RegistrationType: req.RegistrationType,
		VATRegistered:    req.VATRegistered,
		YearsOfOperation: req.YearsOfOperation,
		BusinessType:     req.BusinessType,
		Status:           domain.StatusPending,
		CreatedAt:        time.Now(),
	}
	return s.store.CreateSupplier(ctx, supplier)
}

// ============================================================
// Scoring inputs (read passthroughs for the API)
// ============================================================

func (s *PrescreenService) ListFinancialStatements(ctx context.Context, supplierID string) ([]domain.FinancialStatement, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.ListFinancialStatements")
	defer span.End()

	return s.store.ListFinancialStatements(ctx, supplierID)
}

func (s *PrescreenService) ListTransactions(ctx context.Context, supplierID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.ListTransactions")
	defer span.End()

	return s.store.ListTransactions(ctx, supplierID)
}

func (s *PrescreenService) ListDocuments(ctx context.Context, supplierID string) ([]domain.Document, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.ListDocuments")
	defer span.End()

	return s.store.ListDocuments(ctx, supplierID)
}

// ============================================================
// Score computation
// ============================================================

// ComputeScore recomputes all three sub-scores fresh from current source
// data, derives the composite score and recommendation, and upserts the
// supplier's Score record. Concurrent calls for the same supplier
// serialize; a missing supplier aborts with no partial write.
func (s *PrescreenService) ComputeScore(ctx context.Context, supplierID string) (*domain.Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "PrescreenService.ComputeScore")
	defer span.End()
	span.SetAttributes(attribute.String("supplier.id", supplierID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("compute_score", time.Since(start))
	}()

	lock := s.supplierLock(supplierID)
	lock.Lock()
	defer lock.Unlock()

	supplier, err := s.store.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	// The three input collections are independent; fetch them concurrently
	// and wait for all before compositing.
	var (
		statements   []domain.FinancialStatement
		transactions []domain.Transaction
		documents    []domain.Document
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statements, err = s.store.ListFinancialStatements(gCtx, supplierID)
		if err != nil {
			s.metrics.IncrStoreError("financials")
			return fmt.Errorf("financial statements fetch: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(gCtx, supplierID)
		if err != nil {
			s.metrics.IncrStoreError("transactions")
			return fmt.Errorf("transactions fetch: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		documents, err = s.store.ListDocuments(gCtx, supplierID)
		if err != nil {
			s.metrics.IncrStoreError("documents")
			return fmt.Errorf("documents fetch: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	financialScore, grade := scoreFinancial(supplier, domain.LatestStatement(statements))
	transactionalScore := scoreTransactional(transactions)
	aScore := scoreDocuments(documents)

	overall := int(math.Round(float64(financialScore+transactionalScore+aScore) / 3))
	recommendation := recommend(aScore, financialScore)

	score := &domain.Score{
		SupplierID:         supplierID,
		FinancialScore:     financialScore,
		FinancialGrade:     grade,
		TransactionalScore: transactionalScore,
		AScore:             aScore,
		OverallCreditScore: overall,
		Recommendation:     recommendation,
		LastUpdated:        time.Now(),
	}

	persisted, err := s.store.UpsertScore(ctx, score)
	if err != nil {
		s.metrics.IncrStoreError("scores")
		return nil, fmt.Errorf("score upsert: %w", err)
	}

	// Mirror the recommendation onto the supplier record and drop the
	// stale cache entry.
	if err := s.store.UpdateSupplierStatus(ctx, supplierID, recommendation); err != nil {
		s.logger.Warn("failed to update supplier status",
			zap.String("supplier_id", supplierID),
			zap.Error(err),
		)
	}
	s.cache.Delete(fmt.Sprintf("supplier:%s", supplierID))

	s.metrics.IncrComputation(recommendation)
	s.logger.Info("score computed",
		zap.String("supplier_id", supplierID),
		zap.Int("financial", financialScore),
		zap.String("grade", grade),
		zap.Int("transactional", transactionalScore),
		zap.Int("a_score", aScore),
		zap.Int("overall", overall),
		zap.String("recommendation", recommendation),
	)

	return persisted, nil
}

// recommend maps the document and financial sub-scores to one of the three
// terminal recommendation states. Computed independently on each run; no
// history-dependent transitions.
func recommend(aScore, financialScore int) string {
	switch {
	case aScore >= 80 && financialScore >= 70:
		return domain.RecommendationApproved
	case aScore >= 31 && financialScore >= 60:
		return domain.RecommendationPending
	default:
		return domain.RecommendationRejected
	}
}

// GetScore returns the persisted score for a supplier.
func (s *PrescreenService) GetScore(ctx context.Context, supplierID string) (*domain.Score, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.GetScore")
	defer span.End()

	score, err := s.store.GetScore(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, &domain.ErrNoScore{SupplierID: supplierID}
	}
	return score, nil
}

// OverrideRecommendation sets only the recommendation field on an existing
// score. The override persists until the next full recomputation, which
// always wins.
func (s *PrescreenService) OverrideRecommendation(ctx context.Context, supplierID, recommendation string) (*domain.Score, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.OverrideRecommendation")
	defer span.End()

	if !domain.ValidRecommendation(recommendation) {
		return nil, &domain.ErrValidation{Field: "recommendation", Message: "must be approved, pending or rejected"}
	}

	lock := s.supplierLock(supplierID)
	lock.Lock()
	defer lock.Unlock()

	score, err := s.store.UpdateRecommendation(ctx, supplierID, recommendation)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateSupplierStatus(ctx, supplierID, recommendation); err != nil {
		s.logger.Warn("failed to update supplier status",
			zap.String("supplier_id", supplierID),
			zap.Error(err),
		)
	}
	s.cache.Delete(fmt.Sprintf("supplier:%s", supplierID))

	s.logger.Info("recommendation overridden",
		zap.String("supplier_id", supplierID),
		zap.String("recommendation", recommendation),
	)
	return score, nil
}

// ============================================================
// Derived read models
// ============================================================

// GetPricing derives the offered terms from the persisted score and the
// supplier's profile. Nothing is written.
func (s *PrescreenService) GetPricing(ctx context.Context, supplierID string) (*domain.PricingTerms, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.GetPricing")
	defer span.End()

	supplier, err := s.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	score, err := s.GetScore(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return derivePricing(score, supplier), nil
}

// GetRFM builds the read-only RFM projection of the supplier's transaction
// history.
func (s *PrescreenService) GetRFM(ctx context.Context, supplierID string) (*domain.RFMView, error) {
	ctx, span := tracer.Start(ctx, "PrescreenService.GetRFM")
	defer span.End()

	if _, err := s.store.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	txns, err := s.store.ListTransactions(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return deriveRFM(supplierID, txns, time.Now()), nil
}
