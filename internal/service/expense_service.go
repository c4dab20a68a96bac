package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/internal/storage"
)

// isParticipant checks if the ID belongs to one of the trip's participants.
func isParticipant(id string, participants []models.Participant) bool {
	for _, p := range participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// resolveAmounts fills in the base amount and the conversion fields of an expense.
// A foreign expense recorded with a zero amount is converted from its original
// amount; a base-currency expense records itself at rate one.
func resolveAmounts(e *models.Expense, base string) error {
	if e.Amount.IsNegative() || e.OriginalAmount.IsNegative() || e.ExchangeRate.IsNegative() {
		return fmt.Errorf("%w: amounts and exchange rate", calculator.ErrNegativeAmount)
	}

	if !e.IsForeign(base) {
		e.Currency = base
		if e.OriginalAmount.IsZero() {
			e.OriginalAmount = e.Amount
		}
		e.ExchangeRate = decimal.NewFromInt(1)
		e.Amount = money.Round(e.Amount)
		return nil
	}

	if e.Amount.IsZero() && e.OriginalAmount.IsPositive() {
		if !e.ExchangeRate.IsPositive() {
			return fmt.Errorf("exchange rate required to convert %s %s", e.OriginalAmount, e.Currency)
		}
		e.Amount = e.OriginalAmount.Div(e.ExchangeRate)
	}
	e.Amount = money.Round(e.Amount)
	return nil
}

// AddExpense records an expense paid by one participant.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	msg := req.Msg
	slog.Info("AddExpense request received",
		"trip_id", msg.TripID,
		"payer_id", msg.PayerID,
		"amount", msg.Amount,
		"currency", msg.Currency,
	)

	if err := requireTripID(msg.TripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, msg.TripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", msg.TripID)
	}

	if !isParticipant(msg.PayerID, trip.Participants) {
		slog.Warn("AddExpense payer validation failed", "trip_id", msg.TripID, "payer_id", msg.PayerID)
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: %q", calculator.ErrUnknownPayer, msg.PayerID))
	}

	expense := &models.Expense{
		TripID:         trip.ID,
		PayerID:        msg.PayerID,
		Description:    msg.Description,
		Amount:         msg.Amount,
		OriginalAmount: msg.OriginalAmount,
		Currency:       normalizeCurrency(msg.Currency),
		ExchangeRate:   msg.ExchangeRate,
		Category:       models.ParseCategory(msg.Category),
		IsForecast:     msg.IsForecast,
	}
	if err := resolveAmounts(expense, trip.Base()); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, storeError("CreateExpense", err, "trip_id", trip.ID)
	}

	slog.Info("Expense recorded",
		"trip_id", trip.ID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"category", expense.Category,
	)
	s.publish(ctx, trip.ID)

	return connect.NewResponse(&AddExpenseResponse{Expense: toExpense(expense)}), nil
}

// DeleteExpense removes an expense from a trip.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	msg := req.Msg
	slog.Info("DeleteExpense request received", "trip_id", msg.TripID, "expense_id", msg.ExpenseID)

	if err := requireTripID(msg.TripID); err != nil {
		return nil, err
	}
	if msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, msg.ExpenseID)
	if err != nil {
		return nil, storeError("GetExpense", err, "expense_id", msg.ExpenseID)
	}
	if expense.TripID != msg.TripID {
		return nil, connect.NewError(connect.CodeNotFound,
			fmt.Errorf("expense %s on trip %s: %w", msg.ExpenseID, msg.TripID, storage.ErrNotFound))
	}

	if err := s.store.DeleteExpense(ctx, msg.ExpenseID); err != nil {
		return nil, storeError("DeleteExpense", err, "expense_id", msg.ExpenseID)
	}

	slog.Info("Expense deleted", "trip_id", msg.TripID, "expense_id", msg.ExpenseID)
	s.publish(ctx, msg.TripID)

	return connect.NewResponse(&DeleteExpenseResponse{}), nil
}

// ListExpenses returns a trip's expenses in the order they were recorded.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("ListExpenses request received", "trip_id", tripID)

	if err := requireTripID(tripID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return nil, storeError("GetTrip", err, "trip_id", tripID)
	}

	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, storeError("ListExpenses", err, "trip_id", tripID)
	}

	resp := &ListExpensesResponse{Expenses: make([]Expense, len(expenses))}
	for i := range expenses {
		resp.Expenses[i] = toExpense(&expenses[i])
	}

	slog.Info("ListExpenses successful", "trip_id", tripID, "count", len(expenses))

	return connect.NewResponse(resp), nil
}

// SetForecast stores the trip's spending forecast, replacing any previous one.
func (s *LedgerService) SetForecast(ctx context.Context, req *connect.Request[SetForecastRequest]) (*connect.Response[SetForecastResponse], error) {
	msg := req.Msg
	slog.Info("SetForecast request received", "trip_id", msg.TripID, "applied", msg.Applied)

	if err := requireTripID(msg.TripID); err != nil {
		return nil, err
	}
	if msg.DaysCount < 0 {
		return nil, invalidArgument("days_count cannot be negative")
	}
	for _, v := range []decimal.Decimal{msg.TotalEstimatedPerPerson, msg.DailyMealMid, msg.DailyTransport, msg.RoadCostsTotalPerPerson} {
		if v.IsNegative() {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("%w: forecast amounts", calculator.ErrNegativeAmount))
		}
	}

	forecast := &models.Forecast{
		TripID:                  msg.TripID,
		TotalEstimatedPerPerson: msg.TotalEstimatedPerPerson,
		DailyMealMid:            msg.DailyMealMid,
		DailyTransport:          msg.DailyTransport,
		RoadCostsTotalPerPerson: msg.RoadCostsTotalPerPerson,
		DaysCount:               msg.DaysCount,
		Applied:                 msg.Applied,
	}
	if err := calculator.ValidateForecastComponents(forecast); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.store.SaveForecast(ctx, forecast); err != nil {
		return nil, storeError("SaveForecast", err, "trip_id", msg.TripID)
	}

	slog.Info("Forecast saved", "trip_id", msg.TripID, "applied", forecast.Applied)
	s.publish(ctx, msg.TripID)

	return connect.NewResponse(&SetForecastResponse{Forecast: toForecast(forecast)}), nil
}
