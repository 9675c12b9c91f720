package usecase

import (
	"testing"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

func obs(t int64, stock, price string) models.Observation {
	return models.Observation{Time: t, Stock: stock, Price: decimal.RequireFromString(price)}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, got *decimal.Decimal, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	if !got.Equal(dec(want)) {
		t.Fatalf("expected %s, got %s", want, got.String())
	}
}
