package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/service"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"0", "EUR", "0.00 EUR"},
		{"13.345", "EUR", "13.35 EUR"},
		{"1234.5", "EUR", "1,234.50 EUR"},
		{"1234567.891", "", "1,234,567.89"},
		{"-1500", "THB", "-1,500.00 THB"},
		{"999.99", "", "999.99"},
	}
	for _, tt := range tests {
		if got := FormatMoney(dec(tt.amount), tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%s, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(dec("86.456")); got != "86.5%" {
		t.Errorf("FormatPercent = %q, want 86.5%%", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Balances",
		Headers: []string{"Member", "Net"},
		Rows:    [][]string{{"Alice", "60.00"}, {"Bob", "-30.00"}},
	})

	for _, want := range []string{"Balances", "Member", "Alice", "-30.00", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSettlement(t *testing.T) {
	s := &service.GetSettlementResponse{
		Currency: "EUR",
		Balances: []service.MemberBalance{
			{Name: "Alice", TotalPaid: dec("90"), TotalShare: dec("30"), NetBalance: dec("60")},
			{Name: "Bob", TotalShare: dec("30"), NetBalance: dec("-30")},
		},
		Transfers: []service.Transfer{
			{DebtorName: "Bob", CreditorName: "Alice", Amount: dec("30")},
		},
	}

	out := RenderSettlement("Lisbon", s)
	for _, want := range []string{"Lisbon", "Alice", "+60.00", "Bob", "owes", "30.00 EUR"} {
		if !strings.Contains(out, want) {
			t.Errorf("settlement output missing %q:\n%s", want, out)
		}
	}

	settled := RenderSettlement("Lisbon", &service.GetSettlementResponse{Currency: "EUR"})
	if !strings.Contains(settled, "settled up") {
		t.Errorf("expected settled message:\n%s", settled)
	}
}

func TestRenderBudget(t *testing.T) {
	s := &service.GetBudgetSnapshotResponse{
		Currency:     "EUR",
		TotalBudget:  dec("1500"),
		CurrentSpent: dec("1600"),
		Remaining:    dec("-100"),
		PercentUsed:  dec("100"),
		IsOverBudget: true,
		Categories: []service.BudgetCategory{
			{ID: "Flight", Label: "Flight", Color: "#4385BE", Amount: dec("1200")},
			{ID: "Food", Label: "Food", Color: "#DA702C", Amount: dec("400")},
		},
		LocalCurrency: &service.LocalCurrencyView{Currency: "THB", Remaining: dec("-3900")},
	}

	out := RenderBudget("Bangkok", s)
	for _, want := range []string{"Bangkok", "1,500.00 EUR", "OVER BUDGET", "100.0%", "-3,900.00 THB", "Flight", "Food", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("budget output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "forecast preview") {
		t.Error("non-preview snapshot labelled as preview")
	}
}

func TestRenderTrips(t *testing.T) {
	if !strings.Contains(RenderTrips(nil), "No trips") {
		t.Error("empty trip list should say so")
	}
	out := RenderTrips([]service.Trip{{ID: "t1", Name: "Oslo", NumPeople: 4, BudgetPerPerson: dec("800"), BaseCurrency: "NOK"}})
	if !strings.Contains(out, "Oslo") || !strings.Contains(out, "800.00 NOK") {
		t.Errorf("trip row missing:\n%s", out)
	}
}
