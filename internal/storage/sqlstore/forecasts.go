package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/tripledger/internal/models"
)

// SaveForecast upserts the single forecast kept for a trip.
func (s *Store) SaveForecast(ctx context.Context, f *models.Forecast) error {
	if err := s.requireTrip(ctx, f.TripID); err != nil {
		return err
	}
	f.UpdatedAt = time.Now().Unix()

	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO forecasts (trip_id, total_estimated_per_person, daily_meal_mid, daily_transport,
		 road_costs_total_per_person, days_count, applied, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (trip_id) DO UPDATE SET
		 total_estimated_per_person = excluded.total_estimated_per_person,
		 daily_meal_mid = excluded.daily_meal_mid,
		 daily_transport = excluded.daily_transport,
		 road_costs_total_per_person = excluded.road_costs_total_per_person,
		 days_count = excluded.days_count,
		 applied = excluded.applied,
		 updated_at = excluded.updated_at`),
		f.TripID, f.TotalEstimatedPerPerson, f.DailyMealMid, f.DailyTransport,
		f.RoadCostsTotalPerPerson, f.DaysCount, f.Applied, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save forecast: %w", err)
	}
	return nil
}

// GetForecast returns the trip's forecast, or nil if none was saved.
func (s *Store) GetForecast(ctx context.Context, tripID string) (*models.Forecast, error) {
	f := &models.Forecast{}
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT trip_id, total_estimated_per_person, daily_meal_mid, daily_transport,
		 road_costs_total_per_person, days_count, applied, updated_at
		 FROM forecasts WHERE trip_id = ?`),
		tripID,
	).Scan(&f.TripID, &f.TotalEstimatedPerPerson, &f.DailyMealMid, &f.DailyTransport,
		&f.RoadCostsTotalPerPerson, &f.DaysCount, &f.Applied, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No forecast yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}
	return f, nil
}
