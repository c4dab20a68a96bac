package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/metrics"
)

// GetSettlement computes balances and the transfers that settle a trip.
func (s *LedgerService) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("GetSettlement request received", "trip_id", tripID)

	if err := requireTripID(tripID); err != nil {
		return nil, err
	}

	resp, err := s.settle(ctx, tripID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetSettlement successful",
		"trip_id", tripID,
		"members_count", len(resp.Balances),
		"transfers_count", len(resp.Transfers),
	)

	return connect.NewResponse(resp), nil
}

// GetBudgetSnapshot computes budget analytics for a trip. With Preview set, an
// unapplied forecast is simulated on top of the current spend.
func (s *LedgerService) GetBudgetSnapshot(ctx context.Context, req *connect.Request[GetBudgetSnapshotRequest]) (*connect.Response[GetBudgetSnapshotResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("GetBudgetSnapshot request received", "trip_id", tripID, "preview", req.Msg.Preview)

	if err := requireTripID(tripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", tripID)
	}
	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, storeError("ListExpenses", err, "trip_id", tripID)
	}
	forecast, err := s.store.GetForecast(ctx, tripID)
	if err != nil {
		return nil, storeError("GetForecast", err, "trip_id", tripID)
	}

	snapshot, err := calculator.ComputeBudgetSnapshot(*trip, expenses, forecast, req.Msg.Preview)
	if err != nil {
		if isContractViolation(err) {
			return nil, s.engineError(metrics.EngineBudget, tripID, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ObserveBudget()

	slog.Info("GetBudgetSnapshot successful",
		"trip_id", tripID,
		"remaining", snapshot.Remaining,
		"over_budget", snapshot.IsOverBudget,
		"categories_count", len(snapshot.Categories),
	)

	return connect.NewResponse(toBudgetSnapshot(tripID, trip.Base(), snapshot)), nil
}
