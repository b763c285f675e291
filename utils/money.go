package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a float quantity (stock amounts, mileage) to 2 decimal
// places. Money never passes through here; it stays decimal end to end.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Money2 normalizes a money figure to the ledger's 2-decimal scale.
func Money2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
