package decimal

import (
	"github.com/shopspring/decimal"
)

// Wire precision for decimal fields
const (
	// GeneralPlaces is used for coordinates and discounts
	GeneralPlaces int32 = 4
	// AmountPlaces is used for line amounts and tax amounts
	AmountPlaces int32 = 2
)

// Zero is decimal zero
var Zero = decimal.Zero

// Quantize rounds half-up (ties away from zero) to the given number of places
func Quantize(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// LineAmount computes round_half_up(price, 2) * qty
func LineAmount(price decimal.Decimal, qty int) decimal.Decimal {
	return Quantize(price, AmountPlaces).Mul(decimal.NewFromInt(int64(qty)))
}

// Present wraps d as a set optional value
func Present(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
