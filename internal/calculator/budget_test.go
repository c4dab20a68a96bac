package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/models"
)

func baseTrip() models.Trip {
	return models.Trip{
		ID:              "trip-1",
		BaseCurrency:    "EUR",
		BudgetPerPerson: dec("500"),
		NumPeople:       2,
		TransportCost:   dec("200"),
		HotelCost:       dec("300"),
		TransportMode:   models.TransportPlane,
	}
}

func categoryExpense(category models.Category, amount string) models.Expense {
	return models.Expense{
		ID:       "exp-" + string(category) + "-" + amount,
		PayerID:  "A",
		Amount:   dec(amount),
		Category: category,
	}
}

func categoryAmounts(categories []BudgetCategory) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(categories))
	for _, c := range categories {
		out[c.Label] = c.Amount
	}
	return out
}

func sumCategories(categories []BudgetCategory) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range categories {
		sum = sum.Add(c.Amount)
	}
	return sum
}

func TestComputeBudgetSnapshot_UnderBudget(t *testing.T) {
	snap, err := ComputeBudgetSnapshot(baseTrip(), []models.Expense{categoryExpense(models.CategoryFood, "50")}, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"totalBudget", snap.TotalBudget, "1000"},
		{"realExpenseTotal", snap.RealExpenseTotal, "50"},
		{"currentSpent", snap.CurrentSpent, "550"},
		{"remaining", snap.Remaining, "450"},
		{"percentUsed", snap.PercentUsed, "55"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if snap.IsOverBudget {
		t.Error("expected trip to be under budget")
	}

	amounts := categoryAmounts(snap.Categories)
	for label, want := range map[string]string{"Flight": "200", "Lodging": "300", "Food": "50", "Available": "450"} {
		if got, ok := amounts[label]; !ok || !got.Equal(dec(want)) {
			t.Errorf("category %s = %s, want %s", label, got, want)
		}
	}
	if len(snap.Categories) != 4 {
		t.Errorf("got %d categories, want 4", len(snap.Categories))
	}
	if sum := sumCategories(snap.Categories); !sum.Equal(snap.TotalBudget) {
		t.Errorf("categories sum to %s, want %s", sum, snap.TotalBudget)
	}

	// Sorted descending: Available 450, Lodging 300, Flight 200, Food 50
	wantOrder := []models.Category{CategoryRemaining, models.CategoryLodging, CategoryFlight, models.CategoryFood}
	for i, id := range wantOrder {
		if snap.Categories[i].ID != id {
			t.Errorf("category %d = %s, want %s", i, snap.Categories[i].ID, id)
		}
	}
	if snap.LocalCurrency != nil {
		t.Errorf("expected no local currency view, got %+v", snap.LocalCurrency)
	}
}

func TestComputeBudgetSnapshot_OverBudget(t *testing.T) {
	expenses := []models.Expense{
		categoryExpense(models.CategoryFood, "50"),
		categoryExpense(models.CategoryFood, "600"),
	}
	snap, err := ComputeBudgetSnapshot(baseTrip(), expenses, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}

	if !snap.CurrentSpent.Equal(dec("1150")) {
		t.Errorf("currentSpent = %s, want 1150", snap.CurrentSpent)
	}
	if !snap.Remaining.Equal(dec("-150")) {
		t.Errorf("remaining = %s, want -150", snap.Remaining)
	}
	if !snap.IsOverBudget {
		t.Error("expected over budget")
	}
	if !snap.PercentUsed.Equal(dec("100")) {
		t.Errorf("percentUsed = %s, want 100 (clamped)", snap.PercentUsed)
	}
	for _, c := range snap.Categories {
		if c.ID == CategoryRemaining {
			t.Error("Available category must not be injected when over budget")
		}
	}
}

func TestComputeBudgetSnapshot_OverBudgetByHundred(t *testing.T) {
	trip := baseTrip()
	// 200 + 300 + 600 = 1100 against 1000
	snap, err := ComputeBudgetSnapshot(trip, []models.Expense{categoryExpense(models.CategoryFood, "600")}, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}
	if !snap.Remaining.Equal(dec("-100")) || !snap.IsOverBudget {
		t.Errorf("remaining = %s over = %v, want -100 true", snap.Remaining, snap.IsOverBudget)
	}
}

func TestComputeBudgetSnapshot_Forecast(t *testing.T) {
	forecast := &models.Forecast{
		TotalEstimatedPerPerson: dec("150"),
		DailyMealMid:            dec("20"),
		DailyTransport:          dec("5"),
		RoadCostsTotalPerPerson: dec("10"),
		DaysCount:               3,
	}

	t.Run("preview simulates without counting as spent", func(t *testing.T) {
		snap, err := ComputeBudgetSnapshot(baseTrip(), nil, forecast, true)
		if err != nil {
			t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
		}
		if !snap.Previewing {
			t.Error("expected previewing")
		}
		if !snap.CurrentSpent.Equal(dec("500")) {
			t.Errorf("currentSpent = %s, want 500", snap.CurrentSpent)
		}
		if !snap.SimulatedCosts.Equal(dec("300")) {
			t.Errorf("simulatedCosts = %s, want 300", snap.SimulatedCosts)
		}
		if !snap.TotalSpentWithSimulation.Equal(dec("800")) {
			t.Errorf("totalSpentWithSimulation = %s, want 800", snap.TotalSpentWithSimulation)
		}
		if !snap.Remaining.Equal(dec("200")) {
			t.Errorf("remaining = %s, want 200", snap.Remaining)
		}
		if !snap.PercentUsed.Equal(dec("80")) {
			t.Errorf("percentUsed = %s, want 80", snap.PercentUsed)
		}

		byID := make(map[models.Category]decimal.Decimal)
		for _, c := range snap.Categories {
			byID[c.ID] = c.Amount
		}
		// meals 20*3*2 = 120, transport 5*3*2 = 30, road 10*2 = 20, rest 300-170 = 130
		want := map[models.Category]string{
			models.CategoryFood:       "120",
			models.CategoryTransport:  "30",
			models.CategoryTravelRoad: "20",
			CategoryForecast:          "130",
			CategoryRemaining:         "200",
		}
		for id, w := range want {
			if !byID[id].Equal(dec(w)) {
				t.Errorf("category %s = %s, want %s", id, byID[id], w)
			}
		}
		if sum := sumCategories(snap.Categories); !sum.Equal(snap.TotalBudget) {
			t.Errorf("categories sum to %s, want %s", sum, snap.TotalBudget)
		}
	})

	t.Run("no preview ignores an unapplied forecast", func(t *testing.T) {
		snap, err := ComputeBudgetSnapshot(baseTrip(), nil, forecast, false)
		if err != nil {
			t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
		}
		if snap.Previewing || !snap.SimulatedCosts.IsZero() {
			t.Errorf("unexpected simulation: %+v", snap)
		}
		if !snap.Remaining.Equal(dec("500")) {
			t.Errorf("remaining = %s, want 500", snap.Remaining)
		}
	})

	t.Run("applied forecast counts as spent", func(t *testing.T) {
		applied := *forecast
		applied.Applied = true
		snap, err := ComputeBudgetSnapshot(baseTrip(), nil, &applied, true)
		if err != nil {
			t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
		}
		if snap.Previewing {
			t.Error("an applied forecast cannot be previewed")
		}
		if !snap.AppliedForecast.Equal(dec("300")) {
			t.Errorf("appliedForecast = %s, want 300", snap.AppliedForecast)
		}
		if !snap.CurrentSpent.Equal(dec("800")) {
			t.Errorf("currentSpent = %s, want 800", snap.CurrentSpent)
		}
		if sum := sumCategories(snap.Categories); !sum.Equal(snap.TotalBudget) {
			t.Errorf("categories sum to %s, want %s", sum, snap.TotalBudget)
		}
	})

	t.Run("forecast entries in the expense list are excluded", func(t *testing.T) {
		expenses := []models.Expense{
			categoryExpense(models.CategoryFood, "40"),
			{ID: "fc", Amount: dec("999"), Category: models.CategoryOther, IsForecast: true},
		}
		snap, err := ComputeBudgetSnapshot(baseTrip(), expenses, nil, false)
		if err != nil {
			t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
		}
		if !snap.RealExpenseTotal.Equal(dec("40")) {
			t.Errorf("realExpenseTotal = %s, want 40", snap.RealExpenseTotal)
		}
	})
}

func TestComputeBudgetSnapshot_PreviewCategoriesSumToBudget(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		forecast models.Forecast
	}{
		{
			name: "components cover the whole estimate",
			forecast: models.Forecast{
				TotalEstimatedPerPerson: dec("200"),
				DailyMealMid:            dec("30"),
				DailyTransport:          dec("10"),
				DaysCount:               5,
			},
		},
		{
			name: "estimate larger than its components",
			forecast: models.Forecast{
				TotalEstimatedPerPerson: dec("180.50"),
				DailyMealMid:            dec("12.25"),
				RoadCostsTotalPerPerson: dec("40"),
				DaysCount:               4,
			},
		},
		{
			name:     "estimate with no itemization",
			expenses: []models.Expense{categoryExpense(models.CategoryFood, "75.10")},
			forecast: models.Forecast{TotalEstimatedPerPerson: dec("90")},
		},
		{
			name: "mixed expenses and itemized estimate",
			expenses: []models.Expense{
				categoryExpense(models.CategoryFood, "20"),
				categoryExpense(models.CategoryActivity, "33.33"),
			},
			forecast: models.Forecast{
				TotalEstimatedPerPerson: dec("150"),
				DailyMealMid:            dec("15.5"),
				DailyTransport:          dec("4"),
				RoadCostsTotalPerPerson: dec("12"),
				DaysCount:               6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := baseTrip()
			trip.BudgetPerPerson = dec("1000")

			forecast := tt.forecast
			snap, err := ComputeBudgetSnapshot(trip, tt.expenses, &forecast, true)
			if err != nil {
				t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
			}
			if !snap.Previewing || snap.IsOverBudget {
				t.Fatalf("want an under-budget preview, got previewing=%v over=%v", snap.Previewing, snap.IsOverBudget)
			}
			if sum := sumCategories(snap.Categories); !sum.Equal(snap.TotalBudget) {
				t.Errorf("categories sum to %s, want %s", sum, snap.TotalBudget)
			}
			if want := snap.TotalBudget.Sub(snap.TotalSpentWithSimulation); !snap.Remaining.Equal(want) {
				t.Errorf("remaining = %s, want %s", snap.Remaining, want)
			}
		})
	}
}

func TestComputeBudgetSnapshot_ZeroBudget(t *testing.T) {
	trip := baseTrip()
	trip.BudgetPerPerson = decimal.Zero

	snap, err := ComputeBudgetSnapshot(trip, []models.Expense{categoryExpense(models.CategoryFood, "10")}, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}
	if !snap.PercentUsed.IsZero() {
		t.Errorf("percentUsed = %s, want 0", snap.PercentUsed)
	}
	if !snap.IsOverBudget {
		t.Error("spending against a zero budget is over budget")
	}
	for _, c := range snap.Categories {
		if c.ID == CategoryRemaining {
			t.Error("Available category must not be injected for a zero budget")
		}
	}
}

func TestComputeBudgetSnapshot_UnknownCategoryDefaultsToOther(t *testing.T) {
	trip := baseTrip()
	trip.TransportCost = decimal.Zero
	trip.HotelCost = decimal.Zero

	expenses := []models.Expense{
		categoryExpense("Souvenirs", "15"),
		categoryExpense("", "5"),
	}
	snap, err := ComputeBudgetSnapshot(trip, expenses, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}

	for _, c := range snap.Categories {
		switch c.ID {
		case models.CategoryOther:
			if !c.Amount.Equal(dec("20")) {
				t.Errorf("Other = %s, want 20", c.Amount)
			}
		case CategoryFlight, models.CategoryLodging:
			t.Errorf("zero fixed cost %s must not be injected", c.ID)
		}
	}
}

func TestComputeBudgetSnapshot_LocalCurrency(t *testing.T) {
	expenses := []models.Expense{
		categoryExpense(models.CategoryFood, "50"),
		{ID: "no-rate", Amount: dec("10"), Currency: "CHF"},
		{ID: "thb", Amount: dec("20"), Currency: "THB", OriginalAmount: dec("780"), ExchangeRate: dec("39")},
		{ID: "usd", Amount: dec("10"), Currency: "USD", OriginalAmount: dec("11"), ExchangeRate: dec("1.1")},
	}
	snap, err := ComputeBudgetSnapshot(baseTrip(), expenses, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}

	if snap.LocalCurrency == nil {
		t.Fatal("expected local currency view")
	}
	if snap.LocalCurrency.Currency != "THB" {
		t.Errorf("currency = %s, want THB (first foreign expense with a rate)", snap.LocalCurrency.Currency)
	}
	// remaining = 1000 - (500 + 90) = 410, in THB 410 * 39
	if !snap.LocalCurrency.Remaining.Equal(dec("15990")) {
		t.Errorf("local remaining = %s, want 15990", snap.LocalCurrency.Remaining)
	}
}

func TestComputeBudgetSnapshot_Labels(t *testing.T) {
	trip := baseTrip()
	trip.TransportMode = models.TransportTrain

	snap, err := ComputeBudgetSnapshot(trip, nil, nil, false)
	if err != nil {
		t.Fatalf("ComputeBudgetSnapshot() error = %v", err)
	}
	for _, c := range snap.Categories {
		if c.ID == CategoryFlight && c.Label != "Train" {
			t.Errorf("transport label = %q, want Train", c.Label)
		}
		if c.Color == "" {
			t.Errorf("category %s has no color", c.ID)
		}
	}
}

func TestComputeBudgetSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Trip)
		expenses []models.Expense
		forecast *models.Forecast
		wantErr  error
	}{
		{
			name:    "zero people",
			mutate:  func(tr *models.Trip) { tr.NumPeople = 0 },
			wantErr: ErrInvalidHeadcount,
		},
		{
			name:    "negative headcount",
			mutate:  func(tr *models.Trip) { tr.NumPeople = -2 },
			wantErr: ErrInvalidHeadcount,
		},
		{
			name:    "negative hotel cost",
			mutate:  func(tr *models.Trip) { tr.HotelCost = dec("-1") },
			wantErr: ErrNegativeAmount,
		},
		{
			name:     "negative expense",
			expenses: []models.Expense{categoryExpense(models.CategoryFood, "-3")},
			wantErr:  ErrNegativeAmount,
		},
		{
			name:     "negative forecast",
			forecast: &models.Forecast{TotalEstimatedPerPerson: dec("-10")},
			wantErr:  ErrNegativeAmount,
		},
		{
			name: "forecast components above the estimate",
			forecast: &models.Forecast{
				TotalEstimatedPerPerson: dec("100"),
				DailyMealMid:            dec("30"),
				DailyTransport:          dec("10"),
				DaysCount:               5,
			},
			wantErr: ErrForecastComponents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := baseTrip()
			if tt.mutate != nil {
				tt.mutate(&trip)
			}
			_, err := ComputeBudgetSnapshot(trip, tt.expenses, tt.forecast, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ComputeBudgetSnapshot() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		category models.Category
		mode     models.TransportMode
		want     string
	}{
		{CategoryFlight, models.TransportPlane, "Flight"},
		{CategoryFlight, models.TransportTrain, "Train"},
		{CategoryFlight, models.TransportCar, "Road"},
		{models.CategoryTravelRoad, models.TransportCar, "Fuel & tolls"},
		{models.CategoryTravelRoad, models.TransportPlane, "Road costs"},
		{CategoryRemaining, models.TransportBus, "Available"},
		{"Mystery", models.TransportPlane, "Mystery"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+string(tt.mode), func(t *testing.T) {
			if got := CategoryLabel(tt.category, tt.mode); got != tt.want {
				t.Errorf("CategoryLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
