package calculator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

var (
	zeroPercent    = decimal.Zero
	hundredPercent = decimal.NewFromInt(100)
)

// BudgetCategory is one slice of the budget breakdown chart.
type BudgetCategory struct {
	ID     models.Category
	Amount decimal.Decimal
	Label  string
	Color  string
}

// LocalCurrencyView converts the remaining budget into the currency
// the group has been paying in, for display only.
type LocalCurrencyView struct {
	Currency     string
	ExchangeRate decimal.Decimal // units of Currency per one base unit
	Remaining    decimal.Decimal // Remaining expressed in Currency
}

// BudgetSnapshot aggregates a trip's spend against its budget.
type BudgetSnapshot struct {
	TotalBudget              decimal.Decimal
	TransportCost            decimal.Decimal
	HotelCost                decimal.Decimal
	RealExpenseTotal         decimal.Decimal
	AppliedForecast          decimal.Decimal
	SimulatedCosts           decimal.Decimal
	CurrentSpent             decimal.Decimal
	TotalSpentWithSimulation decimal.Decimal
	Remaining                decimal.Decimal
	PercentUsed              decimal.Decimal // 0..100, two decimals
	IsOverBudget             bool
	Previewing               bool
	Categories               []BudgetCategory
	LocalCurrency            *LocalCurrencyView
}

// ComputeBudgetSnapshot computes budget analytics for a trip.
//
// forecast may be nil. When preview is set and the forecast is not applied,
// its estimate is simulated on top of the current spend without being counted
// in CurrentSpent.
func ComputeBudgetSnapshot(trip models.Trip, expenses []models.Expense, forecast *models.Forecast, preview bool) (*BudgetSnapshot, error) {
	if err := validateBudgetInputs(trip, forecast); err != nil {
		return nil, err
	}

	people := trip.NumPeople
	s := &BudgetSnapshot{
		TotalBudget:   money.Times(trip.BudgetPerPerson, people),
		TransportCost: trip.TransportCost,
		HotelCost:     trip.HotelCost,
	}

	buckets := make(map[models.Category]decimal.Decimal)
	add := func(c models.Category, amount decimal.Decimal) {
		if amount.IsPositive() {
			buckets[c] = buckets[c].Add(amount)
		}
	}

	for _, e := range expenses {
		if e.IsForecast {
			continue
		}
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %s", ErrNegativeAmount, e.ID)
		}
		s.RealExpenseTotal = s.RealExpenseTotal.Add(e.Amount)
		add(models.ParseCategory(string(e.Category)), e.Amount)
	}

	add(CategoryFlight, trip.TransportCost)
	add(models.CategoryLodging, trip.HotelCost)

	if forecast != nil {
		estimate := money.Times(forecast.TotalEstimatedPerPerson, people)
		switch {
		case forecast.Applied:
			s.AppliedForecast = estimate
			add(CategoryForecast, estimate)
		case preview:
			s.Previewing = true
			s.SimulatedCosts = estimate
			addForecastComponents(add, forecast, people, estimate)
		}
	}

	s.CurrentSpent = money.Sum(s.TransportCost, s.HotelCost, s.RealExpenseTotal, s.AppliedForecast)
	s.TotalSpentWithSimulation = s.CurrentSpent.Add(s.SimulatedCosts)

	spent := s.CurrentSpent
	if s.Previewing {
		spent = s.TotalSpentWithSimulation
	}
	s.Remaining = s.TotalBudget.Sub(spent)
	s.IsOverBudget = s.Remaining.IsNegative()
	s.PercentUsed = money.Round(money.Clamp(money.Percent(spent, s.TotalBudget), zeroPercent, hundredPercent))

	if s.Remaining.IsPositive() && s.TotalBudget.IsPositive() {
		add(CategoryRemaining, s.Remaining)
	}

	s.Categories = breakdown(buckets, trip.TransportMode)
	s.LocalCurrency = localCurrencyView(trip.Base(), expenses, s.Remaining)

	return s, nil
}

func validateBudgetInputs(trip models.Trip, forecast *models.Forecast) error {
	if trip.NumPeople <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHeadcount, trip.NumPeople)
	}
	if err := requireNonNegative(
		namedAmount{"budget per person", trip.BudgetPerPerson},
		namedAmount{"transport cost", trip.TransportCost},
		namedAmount{"hotel cost", trip.HotelCost},
	); err != nil {
		return err
	}
	if forecast == nil {
		return nil
	}
	if forecast.DaysCount < 0 {
		return fmt.Errorf("%w: forecast days count", ErrNegativeAmount)
	}
	if err := requireNonNegative(
		namedAmount{"forecast total per person", forecast.TotalEstimatedPerPerson},
		namedAmount{"forecast daily meals", forecast.DailyMealMid},
		namedAmount{"forecast daily transport", forecast.DailyTransport},
		namedAmount{"forecast road costs", forecast.RoadCostsTotalPerPerson},
	); err != nil {
		return err
	}
	return ValidateForecastComponents(forecast)
}

// ValidateForecastComponents rejects a forecast whose itemized meals,
// transport and road costs add up to more than its per-person total.
func ValidateForecastComponents(f *models.Forecast) error {
	if components := f.ComponentsPerPerson(); components.GreaterThan(f.TotalEstimatedPerPerson) {
		return fmt.Errorf("%w: %s itemized against %s per person",
			ErrForecastComponents, components.StringFixed(2), f.TotalEstimatedPerPerson.StringFixed(2))
	}
	return nil
}

type namedAmount struct {
	name   string
	amount decimal.Decimal
}

func requireNonNegative(amounts ...namedAmount) error {
	for _, a := range amounts {
		if a.amount.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativeAmount, a.name)
		}
	}
	return nil
}

// addForecastComponents spreads a previewed estimate over Food, Transport and
// Travel_Road. Whatever the components leave of the estimate goes to Forecast.
// The components never exceed the estimate once validateBudgetInputs passed.
func addForecastComponents(add func(models.Category, decimal.Decimal), f *models.Forecast, people int, estimate decimal.Decimal) {
	meals := money.Times(money.Times(f.DailyMealMid, f.DaysCount), people)
	transport := money.Times(money.Times(f.DailyTransport, f.DaysCount), people)
	road := money.Times(f.RoadCostsTotalPerPerson, people)

	add(models.CategoryFood, meals)
	add(models.CategoryTransport, transport)
	add(models.CategoryTravelRoad, road)
	add(CategoryForecast, estimate.Sub(money.Sum(meals, transport, road)))
}

func breakdown(buckets map[models.Category]decimal.Decimal, mode models.TransportMode) []BudgetCategory {
	categories := make([]BudgetCategory, 0, len(buckets))
	for id, amount := range buckets {
		categories = append(categories, BudgetCategory{
			ID:     id,
			Amount: amount,
			Label:  CategoryLabel(id, mode),
			Color:  CategoryColor(id),
		})
	}
	slices.SortFunc(categories, func(a, b BudgetCategory) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return categories
}

// localCurrencyView uses the first foreign-currency expense with a usable
// rate as the reference. Later foreign expenses are ignored.
func localCurrencyView(base string, expenses []models.Expense, remaining decimal.Decimal) *LocalCurrencyView {
	for _, e := range expenses {
		if e.IsForecast || !e.IsForeign(base) || !e.ExchangeRate.IsPositive() {
			continue
		}
		return &LocalCurrencyView{
			Currency:     e.Currency,
			ExchangeRate: e.ExchangeRate,
			Remaining:    money.Round(remaining.Mul(e.ExchangeRate)),
		}
	}
	return nil
}
