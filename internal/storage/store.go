// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripledger/internal/models"
)

// ErrNotFound is wrapped by every store when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip together with trip.Participants.
	// ID and CreatedAt fields are populated by the store when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with its participants.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips without participants, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// UpdateTrip updates a trip's name and financial fields.
	// Participants are not touched.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// AddParticipant adds a member to an existing trip.
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// ListParticipants returns a trip's participants in join order.
	ListParticipants(ctx context.Context, tripID string) ([]models.Participant, error)

	// CreateExpense persists a new expense. Expenses are never updated.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves one expense.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns a trip's expenses in the order they were recorded.
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error

	// SaveForecast stores the trip's forecast, replacing any previous one.
	SaveForecast(ctx context.Context, forecast *models.Forecast) error

	// GetForecast returns the trip's forecast, or nil if none was saved.
	GetForecast(ctx context.Context, tripID string) (*models.Forecast, error)

	// Close releases any resources held by the store.
	Close() error
}
