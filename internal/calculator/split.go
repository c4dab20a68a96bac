package calculator

import (
	"github.com/shopspring/decimal"
)

// SplitEqually computes each person's share of amount when split among n people.
// The share is not rounded; callers round once balances are aggregated.
func SplitEqually(amount decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, ErrNoParticipants
	}
	return amount.Div(decimal.NewFromInt(int64(n))), nil
}
