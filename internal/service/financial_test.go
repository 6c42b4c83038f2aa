package service

import (
	"testing"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// healthyStatement satisfies every statement-driven criterion.
func healthyStatement() *domain.FinancialStatement {
	return &domain.FinancialStatement{
		ID:                 "fin-1",
		SupplierID:         "sup-1",
		Year:               2025,
		SalesRevenue:       dec(45_000_000),
		NetIncome:          dec(3_000_000),
		TotalDebt:          dec(10_000_000),
		TotalEquity:        dec(8_000_000),
		CurrentAssets:      dec(12_000_000),
		CurrentLiabilities: dec(6_000_000),
		InterestExpense:    dec(500_000),
	}
}

func TestScoreFinancial_AllCriteriaMet(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 5,
	}

	score, grade := scoreFinancial(supplier, healthyStatement())
	if score != 100 {
		t.Errorf("expected score 100, got %d", score)
	}
	if grade != "AAA" {
		t.Errorf("expected grade AAA, got %s", grade)
	}
}

func TestScoreFinancial_NoStatement(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationPLC,
		VATRegistered:    true,
		YearsOfOperation: 10,
	}

	score, grade := scoreFinancial(supplier, nil)
	if score != 0 {
		t.Errorf("expected score 0 without a statement, got %d", score)
	}
	if grade != "F" {
		t.Errorf("expected grade F, got %s", grade)
	}
}

func TestScoreFinancial_ZeroEquityFailsLeverage(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 5,
	}
	stmt := healthyStatement()
	stmt.TotalEquity = decimal.Zero

	score, _ := scoreFinancial(supplier, stmt)
	if score != 85 {
		t.Errorf("expected 85 with the leverage criterion failed, got %d", score)
	}
}

func TestScoreFinancial_ZeroLiabilitiesFailsLiquidity(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 5,
	}
	stmt := healthyStatement()
	stmt.CurrentLiabilities = decimal.Zero

	score, _ := scoreFinancial(supplier, stmt)
	if score != 85 {
		t.Errorf("expected 85 with the liquidity criterion failed, got %d", score)
	}
}

func TestScoreFinancial_ZeroInterestExpensePassesCoverage(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 5,
	}
	stmt := healthyStatement()
	stmt.InterestExpense = decimal.Zero

	// No debt service to cover, so the coverage criterion passes even
	// with zero interest expense.
	score, _ := scoreFinancial(supplier, stmt)
	if score != 100 {
		t.Errorf("expected 100 with unconstrained coverage, got %d", score)
	}
}

func TestScoreFinancial_OtherRegistrationNoEntityPoints(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationOther,
		VATRegistered:    true,
		YearsOfOperation: 5,
	}

	score, _ := scoreFinancial(supplier, healthyStatement())
	if score != 90 {
		t.Errorf("expected 90 without entity-type points, got %d", score)
	}
}

func TestScoreFinancial_YoungCompanyNoLongevityPoints(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 1,
	}

	score, _ := scoreFinancial(supplier, healthyStatement())
	if score != 90 {
		t.Errorf("expected 90 without longevity points, got %d", score)
	}
}

func TestScoreFinancial_RevenueAtThresholdFails(t *testing.T) {
	supplier := &domain.Supplier{
		ID:               "sup-1",
		RegistrationType: domain.RegistrationLtd,
		VATRegistered:    true,
		YearsOfOperation: 5,
	}
	stmt := healthyStatement()
	// The revenue criterion is strictly greater-than.
	stmt.SalesRevenue = dec(30_000_000)

	score, _ := scoreFinancial(supplier, stmt)
	if score != 85 {
		t.Errorf("expected 85 with revenue exactly at threshold, got %d", score)
	}
}

func TestFinancialGrade_Ladder(t *testing.T) {
	tests := []struct {
		score int
		grade string
	}{
		{100, "AAA"},
		{95, "AAA"},
		{94, "AA"},
		{90, "AA"},
		{89, "A"},
		{85, "A"},
		{84, "B+"},
		{80, "B+"},
		{79, "B"},
		{75, "B"},
		{74, "C+"},
		{70, "C+"},
		{69, "C"},
		{65, "C"},
		{64, "D+"},
		{60, "D+"},
		{59, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := financialGrade(tt.score); got != tt.grade {
			t.Errorf("financialGrade(%d) = %s, want %s", tt.score, got, tt.grade)
		}
	}
}
