// Package memstore provides an in-memory implementation of the supplier
// store, used as the default backend and in tests. All methods return
// copies, so callers can never mutate stored state through a result.
package memstore

import (
	"context"
	"sync"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/port"
)

// Store is a thread-safe in-memory supplier store.
type Store struct {
	mu         sync.RWMutex
	suppliers  map[string]domain.Supplier
	financials map[string][]domain.FinancialStatement
	txns       map[string][]domain.Transaction
	documents  map[string][]domain.Document
	scores     map[string]domain.Score
}

// Verify interface compliance
var _ port.SupplierStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		suppliers:  make(map[string]domain.Supplier),
		financials: make(map[string][]domain.FinancialStatement),
		txns:       make(map[string][]domain.Transaction),
		documents:  make(map[string][]domain.Document),
		scores:     make(map[string]domain.Score),
	}
}

// GetSupplier returns the supplier with the given ID.
func (s *Store) GetSupplier(_ context.Context, supplierID string) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	supplier, ok := s.suppliers[supplierID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "supplier", ID: supplierID}
	}
	return &supplier, nil
}

// ListSuppliers returns all suppliers.
func (s *Store) ListSuppliers(_ context.Context) ([]domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Supplier, 0, len(s.suppliers))
	for _, supplier := range s.suppliers {
		out = append(out, supplier)
	}
	return out, nil
}

// CreateSupplier stores a new supplier record.
func (s *Store) CreateSupplier(_ context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliers[supplier.ID]; exists {
		return nil, &domain.ErrConflict{Message: "supplier already exists: " + supplier.ID}
	}
	s.suppliers[supplier.ID] = *supplier
	created := s.suppliers[supplier.ID]
	return &created, nil
}

// UpdateSupplierStatus sets the status of an existing supplier.
func (s *Store) UpdateSupplierStatus(_ context.Context, supplierID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, ok := s.suppliers[supplierID]
	if !ok {
		return &domain.ErrNotFound{Resource: "supplier", ID: supplierID}
	}
	supplier.Status = status
	s.suppliers[supplierID] = supplier
	return nil
}

// ListFinancialStatements returns all statements for a supplier.
func (s *Store) ListFinancialStatements(_ context.Context, supplierID string) ([]domain.FinancialStatement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.FinancialStatement(nil), s.financials[supplierID]...), nil
}

// ListTransactions returns all transactions for a supplier.
func (s *Store) ListTransactions(_ context.Context, supplierID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Transaction(nil), s.txns[supplierID]...), nil
}

// ListDocuments returns the document checklist records for a supplier.
func (s *Store) ListDocuments(_ context.Context, supplierID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Document(nil), s.documents[supplierID]...), nil
}

// GetScore returns the persisted score for a supplier, or nil when none
// has been computed yet.
func (s *Store) GetScore(_ context.Context, supplierID string) (*domain.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, ok := s.scores[supplierID]
	if !ok {
		return nil, nil
	}
	return &score, nil
}

// UpsertScore creates or overwrites the score record for a supplier.
func (s *Store) UpsertScore(_ context.Context, score *domain.Score) (*domain.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores[score.SupplierID] = *score
	stored := s.scores[score.SupplierID]
	return &stored, nil
}

// UpdateRecommendation sets only the recommendation field on an existing
// score.
func (s *Store) UpdateRecommendation(_ context.Context, supplierID, recommendation string) (*domain.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score, ok := s.scores[supplierID]
	if !ok {
		return nil, &domain.ErrNoScore{SupplierID: supplierID}
	}
	score.Recommendation = recommendation
	s.scores[supplierID] = score
	return &score, nil
}

// AddFinancialStatement appends a statement record. Used by the seeder and
// tests.
func (s *Store) AddFinancialStatement(stmt domain.FinancialStatement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.financials[stmt.SupplierID] = append(s.financials[stmt.SupplierID], stmt)
}

// AddTransaction appends a transaction record. Used by the seeder and tests.
func (s *Store) AddTransaction(txn domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[txn.SupplierID] = append(s.txns[txn.SupplierID], txn)
}

// AddDocument appends a document record. Used by the seeder and tests.
func (s *Store) AddDocument(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.SupplierID] = append(s.documents[doc.SupplierID], doc)
}
