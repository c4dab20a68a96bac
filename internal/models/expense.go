package models

import "github.com/shopspring/decimal"

// Expense is a single shared cost recorded for a trip.
// It is split equally among every participant of the trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the owning trip.
	TripID string

	// PayerID is the participant who paid. Must reference a trip participant.
	PayerID string

	// Description is free text shown next to the expense.
	Description string

	// Amount is the value in the trip's base currency. Never negative.
	Amount decimal.Decimal

	// OriginalAmount, Currency and ExchangeRate record a foreign-currency
	// purchase for display only. ExchangeRate is units of Currency per one
	// unit of the base currency. Currency equal to the base means no conversion.
	OriginalAmount decimal.Decimal
	Currency       string
	ExchangeRate   decimal.Decimal

	// Category is one of Categories.
	Category Category

	// IsForecast marks synthetic entries produced from a forecast.
	// They are excluded from budget spend.
	IsForecast bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsForeign reports whether the expense was paid in a currency other than base.
func (e Expense) IsForeign(base string) bool {
	return e.Currency != "" && e.Currency != base
}
