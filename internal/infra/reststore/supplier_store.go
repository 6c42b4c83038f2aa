package reststore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/port"
)

// Verify interface compliance
var _ port.SupplierStore = (*Client)(nil)

// GetSupplier fetches a single supplier by ID.
func (c *Client) GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	path := fmt.Sprintf("suppliers?id=eq.%s&limit=1", url.QueryEscape(supplierID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var suppliers []domain.Supplier
	if body != nil {
		if err := json.Unmarshal(body, &suppliers); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	if len(suppliers) == 0 {
		return nil, &domain.ErrNotFound{Resource: "supplier", ID: supplierID}
	}
	return &suppliers[0], nil
}

// ListSuppliers fetches all suppliers.
func (c *Client) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "suppliers?order=createdAt.desc", nil, nil)
	if err != nil {
		return nil, err
	}

	var suppliers []domain.Supplier
	if body != nil {
		if err := json.Unmarshal(body, &suppliers); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	return suppliers, nil
}

// CreateSupplier inserts a new supplier row.
func (c *Client) CreateSupplier(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	payload, err := json.Marshal(supplier)
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, "suppliers", payload, nil)
	if err != nil {
		return nil, err
	}

	var created []domain.Supplier
	if body != nil {
		if err := json.Unmarshal(body, &created); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	if len(created) == 0 {
		return supplier, nil
	}
	return &created[0], nil
}

// UpdateSupplierStatus patches the status column of a supplier row.
func (c *Client) UpdateSupplierStatus(ctx context.Context, supplierID, status string) error {
	path := fmt.Sprintf("suppliers?id=eq.%s", url.QueryEscape(supplierID))
	payload, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, http.MethodPatch, path, payload, nil)
	return err
}

// ListFinancialStatements fetches all statements for a supplier.
func (c *Client) ListFinancialStatements(ctx context.Context, supplierID string) ([]domain.FinancialStatement, error) {
	path := fmt.Sprintf("financial_statements?supplierId=eq.%s&order=year.desc", url.QueryEscape(supplierID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var statements []domain.FinancialStatement
	if body != nil {
		if err := json.Unmarshal(body, &statements); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	return statements, nil
}

// ListTransactions fetches all transactions for a supplier.
func (c *Client) ListTransactions(ctx context.Context, supplierID string) ([]domain.Transaction, error) {
	path := fmt.Sprintf("transactions?supplierId=eq.%s", url.QueryEscape(supplierID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var txns []domain.Transaction
	if body != nil {
		if err := json.Unmarshal(body, &txns); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	return txns, nil
}

// ListDocuments fetches the document checklist for a supplier.
func (c *Client) ListDocuments(ctx context.Context, supplierID string) ([]domain.Document, error) {
	path := fmt.Sprintf("documents?supplierId=eq.%s", url.QueryEscape(supplierID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	if body != nil {
		if err := json.Unmarshal(body, &docs); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	return docs, nil
}

// GetScore fetches the score row for a supplier, nil when none exists.
func (c *Client) GetScore(ctx context.Context, supplierID string) (*domain.Score, error) {
	path := fmt.Sprintf("scores?supplierId=eq.%s&limit=1", url.QueryEscape(supplierID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var scores []domain.Score
	if body != nil {
		if err := json.Unmarshal(body, &scores); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	if len(scores) == 0 {
		return nil, nil
	}
	return &scores[0], nil
}

// UpsertScore inserts or overwrites the score row keyed by supplierId.
func (c *Client) UpsertScore(ctx context.Context, score *domain.Score) (*domain.Score, error) {
	payload, err := json.Marshal(score)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Prefer": "return=representation,resolution=merge-duplicates",
	}
	body, err := c.doRequest(ctx, http.MethodPost, "scores?on_conflict=supplierId", payload, headers)
	if err != nil {
		return nil, err
	}

	var scores []domain.Score
	if body != nil {
		if err := json.Unmarshal(body, &scores); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	if len(scores) == 0 {
		return score, nil
	}
	return &scores[0], nil
}

// UpdateRecommendation patches only the recommendation column of the score
// row.
func (c *Client) UpdateRecommendation(ctx context.Context, supplierID, recommendation string) (*domain.Score, error) {
	path := fmt.Sprintf("scores?supplierId=eq.%s", url.QueryEscape(supplierID))
	payload, err := json.Marshal(map[string]string{"recommendation": recommendation})
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPatch, path, payload, nil)
	if err != nil {
		return nil, err
	}

	var scores []domain.Score
	if body != nil {
		if err := json.Unmarshal(body, &scores); err != nil {
			return nil, &domain.ErrExternalService{Service: "reststore", Err: err}
		}
	}
	if len(scores) == 0 {
		return nil, &domain.ErrNoScore{SupplierID: supplierID}
	}
	return &scores[0], nil
}
