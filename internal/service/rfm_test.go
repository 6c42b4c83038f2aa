package service

import (
	"testing"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

func TestDeriveRFM_NoHistory(t *testing.T) {
	view := deriveRFM("sup-1", nil, time.Now())

	if view.Recency != 1 || view.Frequency != 1 || view.Monetary != 1 {
		t.Errorf("expected 1/1/1 for empty history, got %d/%d/%d",
			view.Recency, view.Frequency, view.Monetary)
	}
	if view.Score != 20 {
		t.Errorf("expected combined score 20, got %d", view.Score)
	}
}

func TestDeriveRFM_RecentHighVolume(t *testing.T) {
	now := time.Now()
	recent := now.AddDate(0, 0, -10)

	txns := make([]domain.Transaction, 20)
	for i := range txns {
		txns[i] = domain.Transaction{
			ID:          "txn-1",
			SupplierID:  "sup-1",
			NetAmount:   decimal.NewFromInt(3_000_000),
			PaymentDate: &recent,
		}
	}

	view := deriveRFM("sup-1", txns, now)
	if view.Recency != 5 {
		t.Errorf("expected recency 5, got %d", view.Recency)
	}
	if view.Frequency != 5 {
		t.Errorf("expected frequency 5, got %d", view.Frequency)
	}
	// 20 x 3M = 60M total
	if view.Monetary != 5 {
		t.Errorf("expected monetary 5, got %d", view.Monetary)
	}
	if view.Score != 100 {
		t.Errorf("expected combined score 100, got %d", view.Score)
	}
}

func TestRFMRecency_Tiers(t *testing.T) {
	// Fixed UTC clock so day arithmetic never crosses a DST boundary.
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		daysAgo int
		want    int
	}{
		{10, 5},
		{30, 5},
		{31, 4},
		{90, 4},
		{91, 3},
		{180, 3},
		{181, 2},
		{365, 2},
		{366, 1},
	}

	for _, tt := range tests {
		d := now.AddDate(0, 0, -tt.daysAgo)
		txns := []domain.Transaction{{ID: "txn-1", SupplierID: "sup-1", PaymentDate: &d}}
		if got := rfmRecency(txns, now); got != tt.want {
			t.Errorf("rfmRecency(%d days ago) = %d, want %d", tt.daysAgo, got, tt.want)
		}
	}
}

func TestRFMRecency_PicksLatestLifecycleDate(t *testing.T) {
	now := time.Now()
	old := now.AddDate(-2, 0, 0)
	recent := now.AddDate(0, 0, -20)

	// PO date is old but the payment landed recently; recency follows
	// the most recent date in the chain.
	txns := []domain.Transaction{{
		ID:          "txn-1",
		SupplierID:  "sup-1",
		PODate:      &old,
		PaymentDate: &recent,
	}}
	if got := rfmRecency(txns, now); got != 5 {
		t.Errorf("expected recency 5 from latest lifecycle date, got %d", got)
	}
}

func TestRFMMonetary_Tiers(t *testing.T) {
	tests := []struct {
		total int64
		want  int
	}{
		{60_000_000, 5},
		{50_000_000, 5},
		{49_999_999, 4},
		{10_000_000, 4},
		{9_999_999, 3},
		{1_000_000, 3},
		{999_999, 2},
		{1, 2},
		{0, 1},
	}

	for _, tt := range tests {
		txns := []domain.Transaction{{ID: "txn-1", SupplierID: "sup-1", NetAmount: decimal.NewFromInt(tt.total)}}
		if got := rfmMonetary(txns); got != tt.want {
			t.Errorf("rfmMonetary(total=%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
