package calculator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

// MemberBalance represents the balance information for one trip participant.
type MemberBalance struct {
	ParticipantID string
	Name          string
	TotalPaid     decimal.Decimal // Total amount paid across all expenses
	TotalShare    decimal.Decimal // This person's equal share of all expenses
	NetBalance    decimal.Decimal // Positive = owed money, Negative = owes money
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	DebtorID   string
	CreditorID string
	Amount     decimal.Decimal
}

// Settlement is the derived state of a trip's ledger.
type Settlement struct {
	// Balances maps participant ID to rounded net balance. Sums to exactly zero.
	Balances map[string]decimal.Decimal

	// Members holds the per-participant breakdown in participant order.
	Members []MemberBalance

	// Transfers zero every balance when applied. At most len(participants)-1 entries.
	Transfers []Transfer
}

// party is a debtor or creditor during greedy matching.
// remaining is always positive.
type party struct {
	id        string
	remaining decimal.Decimal
}

// ComputeSettlement computes net balances and settling transfers for a trip.
// Every expense is split equally among all participants.
//
// Algorithm:
//   - For each expense: payer contributed +amount, every participant owes amount/n
//   - Round balances to cents; push any rounding residue onto the largest balance
//   - Sort debtors and creditors by amount descending, ties by participant ID
//   - Greedy matching: settle the largest debt against the largest credit
//
// Forecast entries are not real payments and are skipped.
func ComputeSettlement(participants []models.Participant, expenses []models.Expense) (*Settlement, error) {
	n := len(participants)
	if n == 0 {
		return nil, ErrNoParticipants
	}

	index := make(map[string]int, n)
	for i, p := range participants {
		if _, exists := index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
		}
		index[p.ID] = i
	}

	paid := make([]decimal.Decimal, n)
	raw := make([]decimal.Decimal, n)
	for _, e := range expenses {
		if e.IsForecast {
			continue
		}
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %s", ErrNegativeAmount, e.ID)
		}
		payer, ok := index[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: %q on expense %s", ErrUnknownPayer, e.PayerID, e.ID)
		}

		share, err := SplitEqually(e.Amount, n)
		if err != nil {
			return nil, err
		}

		paid[payer] = paid[payer].Add(e.Amount)
		raw[payer] = raw[payer].Add(e.Amount)
		for i := range raw {
			raw[i] = raw[i].Sub(share)
		}
	}

	net := reconcile(participants, raw)

	result := &Settlement{
		Balances: make(map[string]decimal.Decimal, n),
		Members:  make([]MemberBalance, n),
	}

	var debtors, creditors []party
	for i, p := range participants {
		result.Balances[p.ID] = net[i]
		result.Members[i] = MemberBalance{
			ParticipantID: p.ID,
			Name:          p.Name,
			TotalPaid:     paid[i],
			TotalShare:    paid[i].Sub(net[i]),
			NetBalance:    net[i],
		}

		switch {
		case money.IsZero(net[i]):
		case net[i].IsNegative():
			debtors = append(debtors, party{id: p.ID, remaining: net[i].Neg()})
		default:
			creditors = append(creditors, party{id: p.ID, remaining: net[i]})
		}
	}

	sortParties(debtors)
	sortParties(creditors)
	result.Transfers = matchGreedy(debtors, creditors)

	return result, nil
}

// reconcile rounds raw balances to cents and absorbs the rounding residue
// into the largest-magnitude balance so the result sums to exactly zero.
func reconcile(participants []models.Participant, raw []decimal.Decimal) []decimal.Decimal {
	net := make([]decimal.Decimal, len(raw))
	sum := decimal.Zero
	for i, b := range raw {
		net[i] = money.Snap(b)
		sum = sum.Add(net[i])
	}
	if sum.IsZero() {
		return net
	}

	largest := 0
	for i := 1; i < len(net); i++ {
		c := net[i].Abs().Cmp(net[largest].Abs())
		if c > 0 || (c == 0 && participants[i].ID < participants[largest].ID) {
			largest = i
		}
	}
	net[largest] = net[largest].Sub(sum)
	return net
}

// sortParties orders by remaining amount descending, then ID ascending.
func sortParties(parties []party) {
	slices.SortFunc(parties, func(a, b party) int {
		if c := b.remaining.Cmp(a.remaining); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
}

// matchGreedy pairs the largest remaining debt with the largest remaining credit
// until one side runs out. Both sides must carry the same total.
func matchGreedy(debtors, creditors []party) []Transfer {
	transfers := make([]Transfer, 0, max(len(debtors)+len(creditors)-1, 0))

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d := &debtors[i]
		c := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := decimal.Min(d.remaining, c.remaining)
		if !money.IsZero(amount) {
			transfers = append(transfers, Transfer{
				DebtorID:   d.id,
				CreditorID: c.id,
				Amount:     money.Round(amount),
			})
		}

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)

		if money.IsZero(d.remaining) {
			i++
		}
		if money.IsZero(c.remaining) {
			j++
		}
	}

	return transfers
}
