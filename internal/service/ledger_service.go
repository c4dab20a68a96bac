// Package service implements the tripledger.v1.LedgerService Connect API.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// Notifier delivers events to the realtime subscribers of a trip.
type Notifier interface {
	Publish(tripID string, event any) error
}

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	store        storage.Store
	notifier     Notifier
	metrics      *metrics.Metrics
	baseCurrency string
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithNotifier publishes a ledger.updated event after every mutation.
func WithNotifier(n Notifier) Option {
	return func(s *LedgerService) { s.notifier = n }
}

// WithMetrics records engine computations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

// WithBaseCurrency sets the currency for trips created without one.
func WithBaseCurrency(code string) Option {
	return func(s *LedgerService) {
		if code != "" {
			s.baseCurrency = strings.ToUpper(code)
		}
	}
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{store: store, baseCurrency: models.DefaultBaseCurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// storeError maps a storage failure to a Connect error.
func storeError(op string, err error, attrs ...any) error {
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn(op+" failed", append(attrs, "error", err)...)
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", append(attrs, "error", err)...)
	return connect.NewError(connect.CodeInternal, err)
}

// engineError maps a contract violation raised on stored data. The request
// itself was fine; the trip is in a state the engine cannot work with.
func (s *LedgerService) engineError(engine string, tripID string, err error) error {
	s.metrics.EngineError(engine)
	slog.Warn("Engine rejected trip data", "engine", engine, "trip_id", tripID, "error", err)
	return connect.NewError(connect.CodeFailedPrecondition, err)
}

func requireTripID(tripID string) error {
	if tripID == "" {
		return invalidArgument("trip_id required")
	}
	return nil
}

// settle loads a trip's ledger and runs the settlement engine over it.
func (s *LedgerService) settle(ctx context.Context, tripID string) (*GetSettlementResponse, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", tripID)
	}
	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, storeError("ListExpenses", err, "trip_id", tripID)
	}

	settlement, err := calculator.ComputeSettlement(trip.Participants, expenses)
	if err != nil {
		if isContractViolation(err) {
			return nil, s.engineError(metrics.EngineSettlement, tripID, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ObserveSettlement(len(settlement.Transfers))

	return toSettlement(trip, settlement), nil
}

func isContractViolation(err error) bool {
	for _, target := range []error{
		calculator.ErrNoParticipants,
		calculator.ErrDuplicateParticipant,
		calculator.ErrUnknownPayer,
		calculator.ErrNegativeAmount,
		calculator.ErrInvalidHeadcount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toSettlement(trip *models.Trip, s *calculator.Settlement) *GetSettlementResponse {
	currency := trip.Base()
	names := make(map[string]string, len(trip.Participants))
	for _, p := range trip.Participants {
		names[p.ID] = p.Name
	}

	resp := &GetSettlementResponse{
		TripID:    trip.ID,
		Currency:  currency,
		Balances:  make([]MemberBalance, len(s.Members)),
		Transfers: make([]Transfer, len(s.Transfers)),
	}
	for i, m := range s.Members {
		resp.Balances[i] = MemberBalance{
			ParticipantID: m.ParticipantID,
			Name:          m.Name,
			TotalPaid:     m.TotalPaid,
			TotalShare:    m.TotalShare,
			NetBalance:    m.NetBalance,
		}
	}
	for i, t := range s.Transfers {
		debtor, creditor := names[t.DebtorID], names[t.CreditorID]
		resp.Transfers[i] = Transfer{
			DebtorID:     t.DebtorID,
			DebtorName:   debtor,
			CreditorID:   t.CreditorID,
			CreditorName: creditor,
			Amount:       t.Amount,
			Summary:      fmt.Sprintf("%s owes %s %s %s", debtor, creditor, t.Amount.StringFixed(2), currency),
		}
	}
	return resp
}

// publish pushes the fresh settlement to the trip's subscribers. Failures are
// logged and never fail the mutation that triggered them.
func (s *LedgerService) publish(ctx context.Context, tripID string) {
	if s.notifier == nil {
		return
	}

	event := LedgerEvent{Type: EventLedgerUpdated, TripID: tripID}
	if settlement, err := s.settle(ctx, tripID); err == nil {
		event.Settlement = settlement
	} else {
		slog.Debug("Publishing update without settlement", "trip_id", tripID, "error", err)
	}

	if err := s.notifier.Publish(tripID, event); err != nil {
		slog.Warn("Failed to publish ledger update", "trip_id", tripID, "error", err)
	}
}
