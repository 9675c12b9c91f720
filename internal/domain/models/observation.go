package models

import "github.com/shopspring/decimal"

// Observation is one parsed input row: a price for a stock at an integer time slot.
type Observation struct {
	Time  int64
	Stock string
	Price decimal.Decimal
}

// MergedRecord is an actual observation joined with its predicted counterpart.
// PredictedPrice and Error are both nil when no prediction exists for (Time, Stock).
type MergedRecord struct {
	Observation
	PredictedPrice *decimal.Decimal
	Error          *decimal.Decimal
}

// HasPrediction reports whether the record was matched against a predicted price.
func (r MergedRecord) HasPrediction() bool {
	return r.PredictedPrice != nil && r.Error != nil
}
