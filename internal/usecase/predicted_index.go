package usecase

import (
	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

// PredictedIndex maps time -> stock -> predicted price.
type PredictedIndex map[int64]map[string]decimal.Decimal

// BuildPredictedIndex indexes predicted observations. A later duplicate
// (time, stock) overwrites an earlier one.
func BuildPredictedIndex(predicted []models.Observation) PredictedIndex {
	idx := make(PredictedIndex)
	for _, p := range predicted {
		stocks, ok := idx[p.Time]
		if !ok {
			stocks = make(map[string]decimal.Decimal)
			idx[p.Time] = stocks
		}
		stocks[p.Stock] = p.Price
	}
	return idx
}

// Lookup returns the predicted price for (time, stock). Presence of the key is
// what counts: a recorded price of zero is still a prediction.
func (idx PredictedIndex) Lookup(t int64, stock string) (decimal.Decimal, bool) {
	stocks, ok := idx[t]
	if !ok {
		return decimal.Decimal{}, false
	}
	price, ok := stocks[stock]
	return price, ok
}

// Len returns the number of (time, stock) entries.
func (idx PredictedIndex) Len() int {
	n := 0
	for _, stocks := range idx {
		n += len(stocks)
	}
	return n
}
