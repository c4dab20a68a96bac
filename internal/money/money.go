// Package money holds the rounding rules shared by the ledger engines.
//
// All amounts are decimal.Decimal values in the trip's base currency. Rounding
// is to the currency minor unit (cents), half away from zero.
package money

import (
	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places kept for base-currency amounts.
const MinorUnits = 2

// Epsilon is the tolerance below which a balance is treated as settled.
var Epsilon = decimal.New(1, -MinorUnits)

var hundred = decimal.NewFromInt(100)

// Round rounds d to the minor unit, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnits)
}

// IsZero reports whether d is within Epsilon of zero.
func IsZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(Epsilon)
}

// Snap rounds d and collapses anything within Epsilon to exactly zero.
func Snap(d decimal.Decimal) decimal.Decimal {
	r := Round(d)
	if IsZero(r) {
		return decimal.Zero
	}
	return r
}

// Sum adds up the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(d, lo), hi)
}

// Times multiplies an amount by a head or day count.
func Times(d decimal.Decimal, n int) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(int64(n)))
}
