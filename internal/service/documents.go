package service

import (
	"math"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
)

// scoreDocuments computes the A-Score: the completion percentage of the
// supplier's document checklist. The denominator is the count of document
// records present, defaulting to the fixed checklist size when the supplier
// has none, so an empty checklist scores 0, never a division by zero.
func scoreDocuments(docs []domain.Document) int {
	total := len(docs)
	if total == 0 {
		total = domain.DefaultChecklistSize
	}

	submitted := 0
	for _, d := range docs {
		if d.Submitted {
			submitted++
		}
	}

	return int(math.Round(float64(submitted) / float64(total) * 100))
}
