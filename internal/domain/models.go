// Package domain defines the core business entities for the supplier
// pre-screening service. These models are independent of the store and
// transport layers and represent the canonical data structures used
// throughout the engine.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Supplier
// ============================================================

// Registration types that qualify for the entity-type criterion.
const (
	RegistrationPLC   = "PLC"
	RegistrationLtd   = "Ltd"
	RegistrationLP    = "LP"
	RegistrationOther = "other"
)

// Supplier status values. Status mirrors the latest recommendation once a
// score has been computed or an operator has overridden it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Supplier represents a supplier's company identity and the static
// attributes that feed the financial rubric. Immutable after creation
// except for Status.
type Supplier struct {
	ID               string    `json:"id"`
	CompanyName      string    `json:"companyName"`
	RegistrationType string    `json:"registrationType"` // PLC, Ltd, LP, other
	VATRegistered    bool      `json:"vatRegistered"`
	YearsOfOperation int       `json:"yearsOfOperation"`
	BusinessType     string    `json:"businessType"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ============================================================
// Financial statements
// ============================================================

// FinancialStatement holds one supplier's statement for one fiscal year.
// Monetary values are arbitrary-precision decimals and serialize as
// decimal strings, never floats.
type FinancialStatement struct {
	ID                 string          `json:"id"`
	SupplierID         string          `json:"supplierId"`
	Year               int             `json:"year"`
	SalesRevenue       decimal.Decimal `json:"salesRevenue"`
	CostOfGoodsSold    decimal.Decimal `json:"costOfGoodsSold"`
	GrossProfit        decimal.Decimal `json:"grossProfit"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	TotalAssets        decimal.Decimal `json:"totalAssets"`
	TotalDebt          decimal.Decimal `json:"totalDebt"`
	TotalEquity        decimal.Decimal `json:"totalEquity"`
	CurrentAssets      decimal.Decimal `json:"currentAssets"`
	CurrentLiabilities decimal.Decimal `json:"currentLiabilities"`
	InterestExpense    decimal.Decimal `json:"interestExpense"`
}

// LatestStatement returns the statement with the maximum year, or nil when
// the slice is empty. There is exactly one statement per (supplier, year).
func LatestStatement(statements []FinancialStatement) *FinancialStatement {
	var latest *FinancialStatement
	for i := range statements {
		if latest == nil || statements[i].Year > latest.Year {
			latest = &statements[i]
		}
	}
	return latest
}

// ============================================================
// Transactions
// ============================================================

// Transaction is one purchase-order-to-receipt lifecycle record. Only
// PaymentTermDays and NetAmount feed scoring; the date chain is
// descriptive.
type Transaction struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplierId"`
	BuyerName       string          `json:"buyerName"`
	PaymentTermDays int             `json:"poPaymentTerm"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	PODate          *time.Time      `json:"poDate,omitempty"`
	DeliveryDate    *time.Time      `json:"deliveryDate,omitempty"`
	InvoiceDate     *time.Time      `json:"invoiceDate,omitempty"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty"`
	ReceiptDate     *time.Time      `json:"receiptDate,omitempty"`
}

// ============================================================
// Documents
// ============================================================

// Document is one entry of the required-document checklist for a supplier.
type Document struct {
	ID            string     `json:"id"`
	SupplierID    string     `json:"supplierId"`
	DocumentType  string     `json:"documentType"`
	Submitted     bool       `json:"submitted"`
	SubmittedDate *time.Time `json:"submittedDate,omitempty"`
}

// ============================================================
// Score
// ============================================================

// Recommendation values for a computed score.
const (
	RecommendationApproved = "approved"
	RecommendationPending  = "pending"
	RecommendationRejected = "rejected"
)

// Score is the persisted result of a pre-screening computation, one per
// supplier, overwritten on every recomputation.
type Score struct {
	SupplierID         string    `json:"supplierId"`
	FinancialScore     int       `json:"financialScore"`
	FinancialGrade     string    `json:"financialGrade"`
	TransactionalScore int       `json:"transactionalScore"`
	AScore             int       `json:"aScore"`
	OverallCreditScore int       `json:"overallCreditScore"`
	Recommendation     string    `json:"recommendation"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// ValidRecommendation reports whether v is one of the three recommendation
// states.
func ValidRecommendation(v string) bool {
	switch v {
	case RecommendationApproved, RecommendationPending, RecommendationRejected:
		return true
	}
	return false
}

// ============================================================
// Pricing (read model, never persisted)
// ============================================================

// PricingTerms are derived from a persisted Score plus supplier attributes
// on every read.
type PricingTerms struct {
	SupplierID       string  `json:"supplierId"`
	AdvanceRateBand  string  `json:"advanceRate"`
	ServiceFeeBand   string  `json:"serviceFee"`
	CreditLimitRange string  `json:"creditLimit"`
	InterestRatePct  float64 `json:"interestRate"`
}

// RFMView is the display-only recency/frequency/monetary projection of a
// supplier's transaction history. It is never reconciled with the
// persisted transactional score.
type RFMView struct {
	SupplierID string `json:"supplierId"`
	Recency    int    `json:"recency"`
	Frequency  int    `json:"frequency"`
	Monetary   int    `json:"monetary"`
	Score      int    `json:"score"`
}

// ============================================================
// API request/response shapes
// ============================================================

// CreateSupplierRequest is the body for POST /v1/suppliers.
type CreateSupplierRequest struct {
	CompanyName      string `json:"companyName"`
	RegistrationType string `json:"registrationType"`
	VATRegistered    bool   `json:"vatRegistered"`
	YearsOfOperation int    `json:"yearsOfOperation"`
	BusinessType     string `json:"businessType"`
}

// OverrideRecommendationRequest is the body for
// POST /v1/suppliers/{supplierId}/recommendation.
type OverrideRecommendationRequest struct {
	Recommendation string `json:"recommendation"`
}

// SeedRequest is the body for POST /v1/dev/seed.
type SeedRequest struct {
	SupplierID string `json:"supplierId"`
}

// SuccessResponse wraps a successful single-entity response.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ServiceHealth reports the health of one dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}

// HealthStatus is the aggregate health report for /healthz.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// ScoringMetrics is returned by GET /v1/metrics/scoring.
type ScoringMetrics struct {
	TotalComputations int64   `json:"totalComputations"`
	Approved          int64   `json:"approved"`
	Pending           int64   `json:"pending"`
	Rejected          int64   `json:"rejected"`
	ApprovalRate      float64 `json:"approvalRate"`
	CacheHitRate      float64 `json:"cacheHitRate"`
	Period            string  `json:"period"`
}
