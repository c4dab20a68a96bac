// Package sqlstore implements storage.Store on top of database/sql.
// The sqlite and postgres packages open the database, apply their schema
// and hand the connection to New.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Placeholder selects how query parameters are written for a driver.
type Placeholder int

const (
	// Question keeps "?" placeholders (SQLite).
	Question Placeholder = iota
	// Dollar rewrites "?" into "$1", "$2", ... (PostgreSQL).
	Dollar
)

// Store implements storage.Store over a *sql.DB.
type Store struct {
	db          *sql.DB
	placeholder Placeholder
}

// New wraps an open, migrated database.
func New(db *sql.DB, placeholder Placeholder) *Store {
	return &Store{db: db, placeholder: placeholder}
}

// DB exposes the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// q adapts a query written with "?" placeholders to the store's driver.
func (s *Store) q(query string) string {
	if s.placeholder != Dollar {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %w: %s", kind, storage.ErrNotFound, id)
}

// CreateTrip persists a new trip and its initial participants.
func (s *Store) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	if trip.BaseCurrency == "" {
		trip.BaseCurrency = models.DefaultBaseCurrency
	}
	if trip.TransportMode == "" {
		trip.TransportMode = models.TransportPlane
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(
		`INSERT INTO trips (id, name, base_currency, budget_per_person, num_people, transport_cost, hotel_cost, transport_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		trip.ID, trip.Name, trip.BaseCurrency, trip.BudgetPerPerson, trip.NumPeople,
		trip.TransportCost, trip.HotelCost, string(trip.TransportMode), trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i := range trip.Participants {
		p := &trip.Participants[i]
		p.TripID = trip.ID
		if err := s.insertParticipant(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID, including its participants.
func (s *Store) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := scanTrip(s.db.QueryRowContext(ctx, s.q(
		`SELECT id, name, base_currency, budget_per_person, num_people, transport_cost, hotel_cost, transport_mode, created_at
		 FROM trips WHERE id = ?`),
		tripID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("trip", tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	trip.Participants, err = s.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return trip, nil
}

// ListTrips returns every trip, newest first. Participants are not loaded.
func (s *Store) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, base_currency, budget_per_person, num_people, transport_cost, hotel_cost, transport_mode, created_at
		 FROM trips ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return trips, nil
}

// UpdateTrip updates the name and financial fields of a trip.
func (s *Store) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	res, err := s.db.ExecContext(ctx, s.q(
		`UPDATE trips SET name = ?, base_currency = ?, budget_per_person = ?, num_people = ?,
		 transport_cost = ?, hotel_cost = ?, transport_mode = ? WHERE id = ?`),
		trip.Name, trip.BaseCurrency, trip.BudgetPerPerson, trip.NumPeople,
		trip.TransportCost, trip.HotelCost, string(trip.TransportMode), trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return notFound("trip", trip.ID)
	}
	return nil
}

// AddParticipant adds a member to an existing trip.
func (s *Store) AddParticipant(ctx context.Context, participant *models.Participant) error {
	if err := s.requireTrip(ctx, participant.TripID); err != nil {
		return err
	}
	return s.insertParticipant(ctx, s.db, participant)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) insertParticipant(ctx context.Context, db execer, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.JoinedAt == 0 {
		p.JoinedAt = time.Now().Unix()
	}
	_, err := db.ExecContext(ctx, s.q(
		"INSERT INTO participants (id, trip_id, name, joined_at) VALUES (?, ?, ?, ?)"),
		p.ID, p.TripID, p.Name, p.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// ListParticipants returns the members of a trip in join order.
func (s *Store) ListParticipants(ctx context.Context, tripID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		"SELECT id, trip_id, name, joined_at FROM participants WHERE trip_id = ? ORDER BY seq"),
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

func (s *Store) requireTrip(ctx context.Context, tripID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, s.q("SELECT 1 FROM trips WHERE id = ?"), tripID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("trip", tripID)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	trip := &models.Trip{}
	var mode string
	err := row.Scan(&trip.ID, &trip.Name, &trip.BaseCurrency, &trip.BudgetPerPerson, &trip.NumPeople,
		&trip.TransportCost, &trip.HotelCost, &mode, &trip.CreatedAt)
	if err != nil {
		return nil, err
	}
	trip.TransportMode = models.ParseTransportMode(mode)
	return trip, nil
}
