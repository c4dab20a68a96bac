package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/models"
)

// Wire messages for tripledger.v1.LedgerService. Amounts travel as decimal
// strings so no precision is lost in JSON.

type Participant struct {
	ID       string `json:"id"`
	TripID   string `json:"tripId"`
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt"`
}

type Trip struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	BaseCurrency    string          `json:"baseCurrency"`
	BudgetPerPerson decimal.Decimal `json:"budgetPerPerson"`
	NumPeople       int             `json:"numPeople"`
	TransportCost   decimal.Decimal `json:"transportCost"`
	HotelCost       decimal.Decimal `json:"hotelCost"`
	TransportMode   string          `json:"transportMode"`
	Participants    []Participant   `json:"participants,omitempty"`
	CreatedAt       int64           `json:"createdAt"`
}

type Expense struct {
	ID             string          `json:"id"`
	TripID         string          `json:"tripId"`
	PayerID        string          `json:"payerId"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	Category       string          `json:"category"`
	IsForecast     bool            `json:"isForecast"`
	CreatedAt      int64           `json:"createdAt"`
}

type Forecast struct {
	TripID                  string          `json:"tripId"`
	TotalEstimatedPerPerson decimal.Decimal `json:"totalEstimatedPerPerson"`
	DailyMealMid            decimal.Decimal `json:"dailyMealMid"`
	DailyTransport          decimal.Decimal `json:"dailyTransport"`
	RoadCostsTotalPerPerson decimal.Decimal `json:"roadCostsTotalPerPerson"`
	DaysCount               int             `json:"daysCount"`
	Applied                 bool            `json:"applied"`
	UpdatedAt               int64           `json:"updatedAt"`
}

type CreateTripRequest struct {
	Name             string          `json:"name"`
	BaseCurrency     string          `json:"baseCurrency,omitempty"`
	BudgetPerPerson  decimal.Decimal `json:"budgetPerPerson"`
	NumPeople        int             `json:"numPeople,omitempty"`
	TransportCost    decimal.Decimal `json:"transportCost"`
	HotelCost        decimal.Decimal `json:"hotelCost"`
	TransportMode    string          `json:"transportMode,omitempty"`
	ParticipantNames []string        `json:"participantNames"`
}

type CreateTripResponse struct {
	Trip Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []Trip `json:"trips"`
}

// UpdateTripRequest changes only the fields that are set.
type UpdateTripRequest struct {
	TripID          string           `json:"tripId"`
	Name            *string          `json:"name,omitempty"`
	BaseCurrency    *string          `json:"baseCurrency,omitempty"`
	BudgetPerPerson *decimal.Decimal `json:"budgetPerPerson,omitempty"`
	NumPeople       *int             `json:"numPeople,omitempty"`
	TransportCost   *decimal.Decimal `json:"transportCost,omitempty"`
	HotelCost       *decimal.Decimal `json:"hotelCost,omitempty"`
	TransportMode   *string          `json:"transportMode,omitempty"`
}

type UpdateTripResponse struct {
	Trip Trip `json:"trip"`
}

type AddParticipantRequest struct {
	TripID string `json:"tripId"`
	Name   string `json:"name"`
}

type AddParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type ListParticipantsRequest struct {
	TripID string `json:"tripId"`
}

type ListParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

type AddExpenseRequest struct {
	TripID         string          `json:"tripId"`
	PayerID        string          `json:"payerId"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Currency       string          `json:"currency,omitempty"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	Category       string          `json:"category,omitempty"`
	IsForecast     bool            `json:"isForecast,omitempty"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	TripID    string `json:"tripId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct {
	TripID string `json:"tripId"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type SetForecastRequest struct {
	TripID                  string          `json:"tripId"`
	TotalEstimatedPerPerson decimal.Decimal `json:"totalEstimatedPerPerson"`
	DailyMealMid            decimal.Decimal `json:"dailyMealMid"`
	DailyTransport          decimal.Decimal `json:"dailyTransport"`
	RoadCostsTotalPerPerson decimal.Decimal `json:"roadCostsTotalPerPerson"`
	DaysCount               int             `json:"daysCount"`
	Applied                 bool            `json:"applied"`
}

type SetForecastResponse struct {
	Forecast Forecast `json:"forecast"`
}

type GetSettlementRequest struct {
	TripID string `json:"tripId"`
}

type MemberBalance struct {
	ParticipantID string          `json:"participantId"`
	Name          string          `json:"name"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalShare    decimal.Decimal `json:"totalShare"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

type Transfer struct {
	DebtorID     string          `json:"debtorId"`
	DebtorName   string          `json:"debtorName"`
	CreditorID   string          `json:"creditorId"`
	CreditorName string          `json:"creditorName"`
	Amount       decimal.Decimal `json:"amount"`
	// Summary reads "<debtor> owes <creditor> <amount> <currency>".
	Summary string `json:"summary"`
}

type GetSettlementResponse struct {
	TripID    string          `json:"tripId"`
	Currency  string          `json:"currency"`
	Balances  []MemberBalance `json:"balances"`
	Transfers []Transfer      `json:"transfers"`
}

type GetBudgetSnapshotRequest struct {
	TripID  string `json:"tripId"`
	Preview bool   `json:"preview,omitempty"`
}

type BudgetCategory struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Color  string          `json:"color"`
	Amount decimal.Decimal `json:"amount"`
}

type LocalCurrencyView struct {
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Remaining    decimal.Decimal `json:"remaining"`
}

type GetBudgetSnapshotResponse struct {
	TripID                   string             `json:"tripId"`
	Currency                 string             `json:"currency"`
	TotalBudget              decimal.Decimal    `json:"totalBudget"`
	TransportCost            decimal.Decimal    `json:"transportCost"`
	HotelCost                decimal.Decimal    `json:"hotelCost"`
	RealExpenseTotal         decimal.Decimal    `json:"realExpenseTotal"`
	AppliedForecast          decimal.Decimal    `json:"appliedForecast"`
	SimulatedCosts           decimal.Decimal    `json:"simulatedCosts"`
	CurrentSpent             decimal.Decimal    `json:"currentSpent"`
	TotalSpentWithSimulation decimal.Decimal    `json:"totalSpentWithSimulation"`
	Remaining                decimal.Decimal    `json:"remaining"`
	PercentUsed              decimal.Decimal    `json:"percentUsed"`
	IsOverBudget             bool               `json:"isOverBudget"`
	Previewing               bool               `json:"previewing"`
	Categories               []BudgetCategory   `json:"categories"`
	LocalCurrency            *LocalCurrencyView `json:"localCurrency,omitempty"`
}

// EventLedgerUpdated is published to a trip's subscribers after every mutation.
const EventLedgerUpdated = "ledger.updated"

// LedgerEvent is the realtime payload.
type LedgerEvent struct {
	Type       string                 `json:"type"`
	TripID     string                 `json:"tripId"`
	Settlement *GetSettlementResponse `json:"settlement,omitempty"`
}

func toParticipant(p models.Participant) Participant {
	return Participant{ID: p.ID, TripID: p.TripID, Name: p.Name, JoinedAt: p.JoinedAt}
}

func toParticipants(ps []models.Participant) []Participant {
	out := make([]Participant, len(ps))
	for i, p := range ps {
		out[i] = toParticipant(p)
	}
	return out
}

func toTrip(t *models.Trip) Trip {
	trip := Trip{
		ID:              t.ID,
		Name:            t.Name,
		BaseCurrency:    t.Base(),
		BudgetPerPerson: t.BudgetPerPerson,
		NumPeople:       t.NumPeople,
		TransportCost:   t.TransportCost,
		HotelCost:       t.HotelCost,
		TransportMode:   string(t.TransportMode),
		CreatedAt:       t.CreatedAt,
	}
	if t.Participants != nil {
		trip.Participants = toParticipants(t.Participants)
	}
	return trip
}

func toExpense(e *models.Expense) Expense {
	return Expense{
		ID:             e.ID,
		TripID:         e.TripID,
		PayerID:        e.PayerID,
		Description:    e.Description,
		Amount:         e.Amount,
		OriginalAmount: e.OriginalAmount,
		Currency:       e.Currency,
		ExchangeRate:   e.ExchangeRate,
		Category:       string(e.Category),
		IsForecast:     e.IsForecast,
		CreatedAt:      e.CreatedAt,
	}
}

func toForecast(f *models.Forecast) Forecast {
	return Forecast{
		TripID:                  f.TripID,
		TotalEstimatedPerPerson: f.TotalEstimatedPerPerson,
		DailyMealMid:            f.DailyMealMid,
		DailyTransport:          f.DailyTransport,
		RoadCostsTotalPerPerson: f.RoadCostsTotalPerPerson,
		DaysCount:               f.DaysCount,
		Applied:                 f.Applied,
		UpdatedAt:               f.UpdatedAt,
	}
}

func toBudgetSnapshot(tripID, currency string, s *calculator.BudgetSnapshot) *GetBudgetSnapshotResponse {
	resp := &GetBudgetSnapshotResponse{
		TripID:                   tripID,
		Currency:                 currency,
		TotalBudget:              s.TotalBudget,
		TransportCost:            s.TransportCost,
		HotelCost:                s.HotelCost,
		RealExpenseTotal:         s.RealExpenseTotal,
		AppliedForecast:          s.AppliedForecast,
		SimulatedCosts:           s.SimulatedCosts,
		CurrentSpent:             s.CurrentSpent,
		TotalSpentWithSimulation: s.TotalSpentWithSimulation,
		Remaining:                s.Remaining,
		PercentUsed:              s.PercentUsed,
		IsOverBudget:             s.IsOverBudget,
		Previewing:               s.Previewing,
		Categories:               make([]BudgetCategory, len(s.Categories)),
	}
	for i, c := range s.Categories {
		resp.Categories[i] = BudgetCategory{
			ID:     string(c.ID),
			Label:  c.Label,
			Color:  c.Color,
			Amount: c.Amount,
		}
	}
	if lc := s.LocalCurrency; lc != nil {
		resp.LocalCurrency = &LocalCurrencyView{
			Currency:     lc.Currency,
			ExchangeRate: lc.ExchangeRate,
			Remaining:    lc.Remaining,
		}
	}
	return resp
}
