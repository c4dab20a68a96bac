package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/tripledger/internal/service"
)

// RenderTrips renders the trip list.
func RenderTrips(trips []service.Trip) string {
	if len(trips) == 0 {
		return mutedStyle.Render("  No trips yet.") + "\n"
	}

	t := Table{Headers: []string{"Trip", "ID", "People", "Budget / person", "Created"}}
	for _, trip := range trips {
		t.Rows = append(t.Rows, []string{
			trip.Name,
			trip.ID,
			strconv.Itoa(trip.NumPeople),
			FormatMoney(trip.BudgetPerPerson, trip.BaseCurrency),
			time.Unix(trip.CreatedAt, 0).Format("2006-01-02"),
		})
	}
	return RenderTable(t)
}

// RenderSettlement renders member balances followed by the suggested transfers.
func RenderSettlement(tripName string, s *service.GetSettlementResponse) string {
	var b strings.Builder
	b.WriteString(RenderTitle("SETTLE UP  " + tripName))
	b.WriteString("\n\n")

	balances := Table{
		Title:   "Balances",
		Headers: []string{"Member", "Paid", "Share", "Net"},
	}
	for _, m := range s.Balances {
		net := FormatMoney(m.NetBalance, "")
		switch {
		case m.NetBalance.IsPositive():
			net = goodStyle.Render("+" + net)
		case m.NetBalance.IsNegative():
			net = warnStyle.Render(net)
		}
		balances.Rows = append(balances.Rows, []string{
			m.Name,
			FormatMoney(m.TotalPaid, ""),
			FormatMoney(m.TotalShare, ""),
			net,
		})
	}
	b.WriteString(RenderTable(balances))
	b.WriteString("\n")

	if len(s.Transfers) == 0 {
		b.WriteString(goodStyle.Render("  Everyone is settled up."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("  " + headerStyle.Render("Transfers") + "\n")
	for _, tr := range s.Transfers {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			valueStyle.Render(tr.DebtorName),
			mutedStyle.Render("owes"),
			valueStyle.Render(tr.CreditorName),
			goodStyle.Render(FormatMoney(tr.Amount, s.Currency)),
		)
	}
	return b.String()
}

// RenderBudget renders the budget summary and the category breakdown.
func RenderBudget(tripName string, s *service.GetBudgetSnapshotResponse) string {
	var b strings.Builder
	title := "BUDGET  " + tripName
	if s.Previewing {
		title += "  (forecast preview)"
	}
	b.WriteString(RenderTitle(title))
	b.WriteString("\n\n")

	spent := s.CurrentSpent
	if s.Previewing {
		spent = s.TotalSpentWithSimulation
	}

	remaining := FormatMoney(s.Remaining, s.Currency)
	if s.IsOverBudget {
		remaining = badStyle.Render(remaining + "  OVER BUDGET")
	}

	summary := Table{
		Headers: []string{"", "Amount"},
		Rows: [][]string{
			{"Total budget", FormatMoney(s.TotalBudget, s.Currency)},
			{"Spent", FormatMoney(spent, s.Currency)},
			{"Remaining", remaining},
			{"Used", FormatPercent(s.PercentUsed)},
		},
	}
	if s.Previewing {
		summary.Rows = append(summary.Rows, []string{"Simulated", FormatMoney(s.SimulatedCosts, s.Currency)})
	}
	if lc := s.LocalCurrency; lc != nil {
		summary.Rows = append(summary.Rows, []string{"Remaining (local)", FormatMoney(lc.Remaining, lc.Currency)})
	}
	b.WriteString(RenderTable(summary))
	b.WriteString("\n")

	if len(s.Categories) == 0 {
		return b.String()
	}

	total := s.Categories[0].Amount
	for _, c := range s.Categories[1:] {
		total = total.Add(c.Amount)
	}

	breakdown := Table{
		Title:   "Breakdown",
		Headers: []string{"Category", "Amount", "Share"},
	}
	for _, c := range s.Categories {
		share, _ := c.Amount.Div(total).Float64()
		breakdown.Rows = append(breakdown.Rows, []string{
			c.Label,
			FormatMoney(c.Amount, ""),
			RenderBar(share, 20, c.Color),
		})
	}
	b.WriteString(RenderTable(breakdown))
	return b.String()
}
