package models

import "github.com/shopspring/decimal"

// Forecast is an externally produced per-person cost estimate for a trip.
// At most one forecast is kept per trip.
type Forecast struct {
	TripID string

	TotalEstimatedPerPerson decimal.Decimal
	DailyMealMid            decimal.Decimal
	DailyTransport          decimal.Decimal
	RoadCostsTotalPerPerson decimal.Decimal
	DaysCount               int

	// Applied is set when the group folded the estimate into the running total.
	Applied bool

	UpdatedAt int64
}

// ComponentsPerPerson is the part of the estimate itemized as meals,
// local transport and road costs for one person.
func (f *Forecast) ComponentsPerPerson() decimal.Decimal {
	days := decimal.NewFromInt(int64(f.DaysCount))
	return f.DailyMealMid.Mul(days).
		Add(f.DailyTransport.Mul(days)).
		Add(f.RoadCostsTotalPerPerson)
}
