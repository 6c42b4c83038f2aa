// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the scoring
// engine from concrete store implementations.
package port

import (
	"context"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
)

// SupplierStore defines all data operations the pre-screening engine needs.
// Implemented by the in-memory adapter and the PostgREST adapter (or any
// other persistence layer).
type SupplierStore interface {
	// Suppliers
	GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	UpdateSupplierStatus(ctx context.Context, supplierID, status string) error

	// Scoring inputs
	ListFinancialStatements(ctx context.Context, supplierID string) ([]domain.FinancialStatement, error)
	ListTransactions(ctx context.Context, supplierID string) ([]domain.Transaction, error)
	ListDocuments(ctx context.Context, supplierID string) ([]domain.Document, error)

	// Scores (upsert keyed by supplierID; create on first computation,
	// overwrite on recomputation, never delete)
	GetScore(ctx context.Context, supplierID string) (*domain.Score, error)
	UpsertScore(ctx context.Context, score *domain.Score) (*domain.Score, error)
	UpdateRecommendation(ctx context.Context, supplierID, recommendation string) (*domain.Score, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
