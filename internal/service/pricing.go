package service

import (
	"fmt"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
)

// derivePricing maps a persisted score plus supplier attributes to the
// offered terms. Pure and stateless: recomputed on every read, never
// persisted. No intermediate rounding is applied, so the order of the
// adjustments does not affect the result beyond floating-point epsilon.
func derivePricing(score *domain.Score, supplier *domain.Supplier) *domain.PricingTerms {
	return &domain.PricingTerms{
		SupplierID:       score.SupplierID,
		AdvanceRateBand:  advanceRateBand(score.OverallCreditScore),
		ServiceFeeBand:   serviceFeeBand(score.OverallCreditScore, score.FinancialScore),
		CreditLimitRange: creditLimitRange(score, supplier),
		InterestRatePct:  interestRate(score, supplier),
	}
}

func advanceRateBand(overall int) string {
	switch {
	case overall >= 80:
		return "85-90%"
	case overall >= 60:
		return "75-85%"
	default:
		return "65-75%"
	}
}

func serviceFeeBand(overall, financial int) string {
	switch {
	case overall >= 85 && financial >= 80:
		return "1.8-2.2%"
	case overall >= 75 && financial >= 70:
		return "2.2-2.8%"
	case overall >= 65:
		return "2.8-3.5%"
	case overall >= 55:
		return "3.5-4.2%"
	default:
		return "4.2-5.0%"
	}
}

// creditLimitRange builds the offered credit limit band in millions: a base
// tier from the overall score, scaled by a compounding adjustment factor,
// capped by a ceiling tier, then formatted as "low-highM".
func creditLimitRange(score *domain.Score, supplier *domain.Supplier) string {
	base := 8.0
	switch {
	case score.OverallCreditScore >= 80:
		base = 50.0
	case score.OverallCreditScore >= 60:
		base = 25.0
	}

	factor := gradeFactor(score.FinancialGrade) *
		transactionalFactor(score.TransactionalScore) *
		yearsFactor(supplier.YearsOfOperation) *
		documentFactor(score.AScore)
	if supplier.VATRegistered {
		factor *= 1.15
	}

	limit := base * factor

	ceiling := 24.0
	switch {
	case score.OverallCreditScore >= 80 && supplier.YearsOfOperation >= 3:
		ceiling = 100.0
	case score.OverallCreditScore >= 60 && supplier.YearsOfOperation >= 2:
		ceiling = 48.0
	}
	if limit > ceiling {
		limit = ceiling
	}

	delta := 2.0
	switch {
	case limit >= 50:
		delta = 10.0
	case limit >= 20:
		delta = 5.0
	}

	return fmt.Sprintf("%.0f-%.0fM", limit, limit+delta)
}

func gradeFactor(grade string) float64 {
	switch grade {
	case "AAA", "AA":
		return 1.3
	case "A", "B+":
		return 1.15
	case "B", "C+":
		return 1.0
	case "C", "D+", "D":
		return 0.85
	default:
		return 0.7
	}
}

func transactionalFactor(score int) float64 {
	switch {
	case score >= 80:
		return 1.2
	case score >= 65:
		return 1.1
	case score >= 50:
		return 1.0
	default:
		return 0.9
	}
}

func yearsFactor(years int) float64 {
	switch {
	case years >= 10:
		return 1.2
	case years >= 5:
		return 1.1
	case years >= 2:
		return 1.0
	default:
		return 0.85
	}
}

func documentFactor(aScore int) float64 {
	switch {
	case aScore >= 90:
		return 1.1
	case aScore >= 60:
		return 1.0
	default:
		return 0.9
	}
}

// interestRate computes the annualized rate: a base from the overall-score
// bracket, adjusted by signed deltas, floored at 1.0%.
func interestRate(score *domain.Score, supplier *domain.Supplier) float64 {
	rate := 4.0
	switch {
	case score.OverallCreditScore >= 90:
		rate = 1.2
	case score.OverallCreditScore >= 80:
		rate = 1.6
	case score.OverallCreditScore >= 70:
		rate = 2.1
	case score.OverallCreditScore >= 60:
		rate = 2.7
	case score.OverallCreditScore >= 50:
		rate = 3.3
	}

	switch {
	case score.FinancialScore >= 80:
		rate -= 0.3
	case score.FinancialScore < 60:
		rate += 0.4
	}
	switch {
	case score.TransactionalScore >= 70:
		rate -= 0.2
	case score.TransactionalScore < 50:
		rate += 0.3
	}
	switch {
	case supplier.YearsOfOperation >= 5:
		rate -= 0.2
	case supplier.YearsOfOperation < 2:
		rate += 0.2
	}
	if supplier.VATRegistered {
		rate -= 0.1
	}
	switch {
	case score.AScore >= 90:
		rate -= 0.1
	case score.AScore < 50:
		rate += 0.2
	}

	if rate < 1.0 {
		rate = 1.0
	}
	return rate
}
