package memstore

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

// Demo-data generation lives here, in the store layer, never in the
// scoring engine. Everything is derived from a PRNG seeded with a hash of
// the supplier ID, so the same ID always produces the same records.

var seedCompanyNames = []string{
	"Siam Precision Parts",
	"Golden Harvest Trading",
	"Eastern Textile Mills",
	"Pacific Agro Supply",
	"Metro Steel Works",
	"Bangkok Packaging",
	"Delta Electronics Supply",
	"Northern Timber",
}

var seedBuyerNames = []string{
	"Central Retail Group",
	"Thai Beverage Holdings",
	"Summit Auto Parts",
	"Industrial Estates PLC",
	"Grand Construction",
}

var seedBusinessTypes = []string{
	"manufacturing",
	"trading",
	"agriculture",
	"logistics",
}

var seedRegistrationTypes = []string{
	domain.RegistrationPLC,
	domain.RegistrationLtd,
	domain.RegistrationLP,
	domain.RegistrationOther,
}

// Seed populates the store with a demo supplier and its scoring inputs,
// all deterministically derived from supplierID. Existing records for the
// ID are replaced.
func (s *Store) Seed(supplierID string, now time.Time) *domain.Supplier {
	rng := rand.New(rand.NewSource(seedFor(supplierID)))

	supplier := domain.Supplier{
		ID:               supplierID,
		CompanyName:      seedCompanyNames[rng.Intn(len(seedCompanyNames))],
		RegistrationType: seedRegistrationTypes[rng.Intn(len(seedRegistrationTypes))],
		VATRegistered:    rng.Intn(4) > 0, // 3 in 4 registered
		YearsOfOperation: rng.Intn(15),
		BusinessType:     seedBusinessTypes[rng.Intn(len(seedBusinessTypes))],
		Status:           domain.StatusPending,
		CreatedAt:        now,
	}

	statements := seedStatements(supplierID, rng, now)
	txns := seedTransactions(supplierID, rng, now)
	docs := seedDocuments(supplierID, rng, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[supplierID] = supplier
	s.financials[supplierID] = statements
	s.txns[supplierID] = txns
	s.documents[supplierID] = docs

	return &supplier
}

func seedFor(supplierID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(supplierID))
	return int64(h.Sum64())
}

func seedStatements(supplierID string, rng *rand.Rand, now time.Time) []domain.FinancialStatement {
	years := 1 + rng.Intn(3)
	out := make([]domain.FinancialStatement, 0, years)
	for i := 0; i < years; i++ {
		year := now.Year() - 1 - i
		revenue := decimal.NewFromInt(int64(5_000_000 + rng.Intn(95_000_000)))
		cogs := revenue.Mul(decimal.NewFromFloat(0.55 + rng.Float64()*0.3)).Round(2)
		gross := revenue.Sub(cogs)
		net := gross.Mul(decimal.NewFromFloat(rng.Float64()*0.6 - 0.1)).Round(2)
		assets := revenue.Mul(decimal.NewFromFloat(0.8 + rng.Float64()*0.8)).Round(2)
		debt := assets.Mul(decimal.NewFromFloat(rng.Float64() * 0.7)).Round(2)
		equity := assets.Sub(debt)

		out = append(out, domain.FinancialStatement{
			ID:                 fmt.Sprintf("%s-fin-%d", supplierID, year),
			SupplierID:         supplierID,
			Year:               year,
			SalesRevenue:       revenue,
			CostOfGoodsSold:    cogs,
			GrossProfit:        gross,
			NetIncome:          net,
			TotalAssets:        assets,
			TotalDebt:          debt,
			TotalEquity:        equity,
			CurrentAssets:      assets.Mul(decimal.NewFromFloat(0.3 + rng.Float64()*0.3)).Round(2),
			CurrentLiabilities: debt.Mul(decimal.NewFromFloat(0.3 + rng.Float64()*0.4)).Round(2),
			InterestExpense:    debt.Mul(decimal.NewFromFloat(rng.Float64() * 0.08)).Round(2),
		})
	}
	return out
}

func seedTransactions(supplierID string, rng *rand.Rand, now time.Time) []domain.Transaction {
	count := rng.Intn(16)
	out := make([]domain.Transaction, 0, count)
	for i := 0; i < count; i++ {
		poDate := now.AddDate(0, 0, -rng.Intn(400))
		delivery := poDate.AddDate(0, 0, 7+rng.Intn(21))
		invoice := delivery.AddDate(0, 0, rng.Intn(7))

		out = append(out, domain.Transaction{
			ID:              fmt.Sprintf("%s-txn-%d", supplierID, i),
			SupplierID:      supplierID,
			BuyerName:       seedBuyerNames[rng.Intn(len(seedBuyerNames))],
			PaymentTermDays: 30 * (1 + rng.Intn(8)), // 30..240 days
			NetAmount:       decimal.NewFromInt(int64(100_000 + rng.Intn(4_900_000))),
			PODate:          &poDate,
			DeliveryDate:    &delivery,
			InvoiceDate:     &invoice,
		})
	}
	return out
}

func seedDocuments(supplierID string, rng *rand.Rand, now time.Time) []domain.Document {
	out := make([]domain.Document, 0, len(domain.RequiredDocuments))
	for i, docType := range domain.RequiredDocuments {
		submitted := rng.Float64() < 0.7
		doc := domain.Document{
			ID:           fmt.Sprintf("%s-doc-%d", supplierID, i),
			SupplierID:   supplierID,
			DocumentType: docType,
			Submitted:    submitted,
		}
		if submitted {
			d := now.AddDate(0, 0, -rng.Intn(90))
			doc.SubmittedDate = &d
		}
		out = append(out, doc)
	}
	return out
}
