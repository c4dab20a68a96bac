package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/middleware"
	"github.com/mmynk/tripledger/internal/models"
)

// validateTripAmounts checks the financial fields shared by CreateTrip and UpdateTrip.
func validateTripAmounts(budgetPerPerson, transportCost, hotelCost decimal.Decimal, numPeople int) error {
	if numPeople < 0 {
		return invalidArgument("num_people cannot be negative")
	}
	switch {
	case budgetPerPerson.IsNegative():
		return invalidArgument("budget_per_person cannot be negative")
	case transportCost.IsNegative():
		return invalidArgument("transport_cost cannot be negative")
	case hotelCost.IsNegative():
		return invalidArgument("hotel_cost cannot be negative")
	}
	return nil
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateTrip creates a new trip with its initial participants.
func (s *LedgerService) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	msg := req.Msg
	slog.Info("CreateTrip request received",
		"name", msg.Name,
		"participants_count", len(msg.ParticipantNames),
		"user_id", middleware.GetUserID(ctx),
	)

	if strings.TrimSpace(msg.Name) == "" {
		return nil, invalidArgument("name required")
	}
	if err := validateTripAmounts(msg.BudgetPerPerson, msg.TransportCost, msg.HotelCost, msg.NumPeople); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Name:            strings.TrimSpace(msg.Name),
		BaseCurrency:    normalizeCurrency(msg.BaseCurrency),
		BudgetPerPerson: msg.BudgetPerPerson,
		NumPeople:       msg.NumPeople,
		TransportCost:   msg.TransportCost,
		HotelCost:       msg.HotelCost,
		TransportMode:   models.ParseTransportMode(msg.TransportMode),
	}
	if trip.BaseCurrency == "" {
		trip.BaseCurrency = s.baseCurrency
	}
	for _, name := range msg.ParticipantNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, invalidArgument("participant names cannot be empty")
		}
		trip.Participants = append(trip.Participants, models.Participant{Name: name})
	}
	if trip.NumPeople == 0 {
		trip.NumPeople = len(trip.Participants)
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, storeError("CreateTrip", err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "base_currency", trip.BaseCurrency)

	return connect.NewResponse(&CreateTripResponse{Trip: toTrip(trip)}), nil
}

// GetTrip retrieves a trip and its participants.
func (s *LedgerService) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("GetTrip request received", "trip_id", tripID)

	if err := requireTripID(tripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", tripID)
	}

	return connect.NewResponse(&GetTripResponse{Trip: toTrip(trip)}), nil
}

// ListTrips returns every trip, newest first, without participants.
func (s *LedgerService) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, storeError("ListTrips", err)
	}

	resp := &ListTripsResponse{Trips: make([]Trip, len(trips))}
	for i, trip := range trips {
		resp.Trips[i] = toTrip(trip)
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(resp), nil
}

// UpdateTrip changes the fields set on the request and leaves the rest alone.
func (s *LedgerService) UpdateTrip(ctx context.Context, req *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	msg := req.Msg
	slog.Info("UpdateTrip request received", "trip_id", msg.TripID)

	if err := requireTripID(msg.TripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, msg.TripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", msg.TripID)
	}

	if msg.Name != nil {
		if strings.TrimSpace(*msg.Name) == "" {
			return nil, invalidArgument("name cannot be empty")
		}
		trip.Name = strings.TrimSpace(*msg.Name)
	}
	if msg.BaseCurrency != nil {
		trip.BaseCurrency = normalizeCurrency(*msg.BaseCurrency)
	}
	if msg.BudgetPerPerson != nil {
		trip.BudgetPerPerson = *msg.BudgetPerPerson
	}
	if msg.NumPeople != nil {
		trip.NumPeople = *msg.NumPeople
	}
	if msg.TransportCost != nil {
		trip.TransportCost = *msg.TransportCost
	}
	if msg.HotelCost != nil {
		trip.HotelCost = *msg.HotelCost
	}
	if msg.TransportMode != nil {
		trip.TransportMode = models.ParseTransportMode(*msg.TransportMode)
	}
	if err := validateTripAmounts(trip.BudgetPerPerson, trip.TransportCost, trip.HotelCost, trip.NumPeople); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, storeError("UpdateTrip", err, "trip_id", trip.ID)
	}

	slog.Info("Trip updated", "trip_id", trip.ID)
	s.publish(ctx, trip.ID)

	return connect.NewResponse(&UpdateTripResponse{Trip: toTrip(trip)}), nil
}

// AddParticipant adds a member to an existing trip. When the trip's head
// count equals its member count, the head count grows with the join.
func (s *LedgerService) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	msg := req.Msg
	slog.Info("AddParticipant request received", "trip_id", msg.TripID, "name", msg.Name)

	if err := requireTripID(msg.TripID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}

	trip, err := s.store.GetTrip(ctx, msg.TripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", msg.TripID)
	}

	participant := &models.Participant{TripID: msg.TripID, Name: name}
	if err := s.store.AddParticipant(ctx, participant); err != nil {
		return nil, storeError("AddParticipant", err, "trip_id", msg.TripID)
	}

	// A head count that matches the member list follows it. An explicit
	// count for people who never join the ledger is left alone.
	if trip.NumPeople == len(trip.Participants) {
		trip.NumPeople++
		if err := s.store.UpdateTrip(ctx, trip); err != nil {
			return nil, storeError("UpdateTrip", err, "trip_id", trip.ID)
		}
	}

	slog.Info("Participant added", "trip_id", msg.TripID, "participant_id", participant.ID)
	s.publish(ctx, msg.TripID)

	return connect.NewResponse(&AddParticipantResponse{Participant: toParticipant(*participant)}), nil
}

// ListParticipants returns a trip's participants in join order.
func (s *LedgerService) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("ListParticipants request received", "trip_id", tripID)

	if err := requireTripID(tripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", tripID)
	}

	return connect.NewResponse(&ListParticipantsResponse{Participants: toParticipants(trip.Participants)}), nil
}
