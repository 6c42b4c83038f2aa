package service

import (
	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
)

// Transactional rubric: a neutral prior of 50, additively adjusted only
// when the supplier has trading history.
const (
	transactionalBase    = 50
	maxAvgPaymentTermDay = 180
)

// scoreTransactional computes the 0-100 transactional score from a
// supplier's transaction history. Having no transactions leaves the score
// at the neutral base.
func scoreTransactional(txns []domain.Transaction) int {
	score := transactionalBase
	if len(txns) == 0 {
		return score
	}

	totalTermDays := 0
	for _, t := range txns {
		totalTermDays += t.PaymentTermDays
	}
	avgTerm := float64(totalTermDays) / float64(len(txns))

	if avgTerm <= maxAvgPaymentTermDay {
		score += 20
	}
	if len(txns) >= 5 {
		score += 15
	}
	if len(txns) >= 10 {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}
