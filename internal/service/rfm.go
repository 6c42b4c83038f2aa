package service

import (
	"math"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

// RFM monetary tier boundaries.
var (
	rfmMonetaryTier5 = decimal.NewFromInt(50_000_000)
	rfmMonetaryTier4 = decimal.NewFromInt(10_000_000)
	rfmMonetaryTier3 = decimal.NewFromInt(1_000_000)
)

// deriveRFM builds the display-only recency/frequency/monetary projection
// of a supplier's transaction history. Each sub-score is 1-5; the combined
// score is the mean rescaled to 0-100. This view is independent of the
// persisted transactional score and is never stored.
func deriveRFM(supplierID string, txns []domain.Transaction, now time.Time) *domain.RFMView {
	recency := rfmRecency(txns, now)
	frequency := rfmFrequency(len(txns))
	monetary := rfmMonetary(txns)

	// mean of the three 1-5 scores, rescaled to 0-100
	mean := float64(recency+frequency+monetary) / 3
	score := int(math.Round(mean / 5 * 100))

	return &domain.RFMView{
		SupplierID: supplierID,
		Recency:    recency,
		Frequency:  frequency,
		Monetary:   monetary,
		Score:      score,
	}
}

func rfmRecency(txns []domain.Transaction, now time.Time) int {
	var latest *time.Time
	for i := range txns {
		if d := latestTransactionDate(&txns[i]); d != nil {
			if latest == nil || d.After(*latest) {
				latest = d
			}
		}
	}
	if latest == nil {
		return 1
	}

	days := int(now.Sub(*latest).Hours() / 24)
	switch {
	case days <= 30:
		return 5
	case days <= 90:
		return 4
	case days <= 180:
		return 3
	case days <= 365:
		return 2
	default:
		return 1
	}
}

func rfmFrequency(count int) int {
	switch {
	case count >= 20:
		return 5
	case count >= 10:
		return 4
	case count >= 5:
		return 3
	case count >= 1:
		return 2
	default:
		return 1
	}
}

func rfmMonetary(txns []domain.Transaction) int {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.NetAmount)
	}
	switch {
	case total.GreaterThanOrEqual(rfmMonetaryTier5):
		return 5
	case total.GreaterThanOrEqual(rfmMonetaryTier4):
		return 4
	case total.GreaterThanOrEqual(rfmMonetaryTier3):
		return 3
	case total.IsPositive():
		return 2
	default:
		return 1
	}
}

// latestTransactionDate returns the most recent date in the transaction's
// lifecycle chain, or nil when none is set.
func latestTransactionDate(t *domain.Transaction) *time.Time {
	var latest *time.Time
	for _, d := range []*time.Time{t.PODate, t.DeliveryDate, t.InvoiceDate, t.PaymentDate, t.ReceiptDate} {
		if d == nil {
			continue
		}
		if latest == nil || d.After(*latest) {
			latest = d
		}
	}
	return latest
}
