package usecase

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

const errorPlaces = 2

// Merge joins each actual observation with its predicted price, preserving
// input order. Unmatched records keep PredictedPrice and Error nil.
func Merge(actual []models.Observation, idx PredictedIndex) []models.MergedRecord {
	out := make([]models.MergedRecord, len(actual))
	for i, obs := range actual {
		out[i].Observation = obs
		predicted, ok := idx.Lookup(obs.Time, obs.Stock)
		if !ok {
			continue
		}
		e := AbsError(obs.Price, predicted)
		out[i].PredictedPrice = &predicted
		out[i].Error = &e
	}
	return out
}

// AbsError is |price - predicted| taken in float64 and rounded to 2 decimals.
func AbsError(price, predicted decimal.Decimal) decimal.Decimal {
	return roundFloat(math.Abs(price.InexactFloat64() - predicted.InexactFloat64()))
}

// roundFloat rounds the exact binary value of f to errorPlaces, so a float
// sitting just below a half rounds down (0.015 is 0.01499... and gives 0.01).
func roundFloat(f float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(f, 'f', errorPlaces, 64))
}
