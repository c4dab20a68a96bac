package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		base_currency VARCHAR(3) NOT NULL,
		budget_per_person NUMERIC NOT NULL,
		num_people INTEGER NOT NULL,
		transport_cost NUMERIC NOT NULL,
		hotel_cost NUMERIC NOT NULL,
		transport_mode VARCHAR(16) NOT NULL,
		created_at BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS participants (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		joined_at BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		payer_id TEXT NOT NULL REFERENCES participants(id),
		description TEXT NOT NULL,
		amount NUMERIC NOT NULL CHECK (amount >= 0),
		original_amount NUMERIC NOT NULL,
		currency VARCHAR(3) NOT NULL,
		exchange_rate NUMERIC NOT NULL,
		category VARCHAR(32) NOT NULL,
		is_forecast BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS forecasts (
		trip_id TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		total_estimated_per_person NUMERIC NOT NULL,
		daily_meal_mid NUMERIC NOT NULL,
		daily_transport NUMERIC NOT NULL,
		road_costs_total_per_person NUMERIC NOT NULL,
		days_count INTEGER NOT NULL,
		applied BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at BIGINT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_participants_trip_id ON participants(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_trip_id ON expenses(trip_id)`,
}

// RunMigrations applies the schema statement by statement.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
