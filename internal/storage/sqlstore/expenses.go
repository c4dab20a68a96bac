package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
)

const expenseColumns = `id, trip_id, payer_id, description, amount, original_amount, currency,
	exchange_rate, category, is_forecast, created_at`

// CreateExpense persists a new expense.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.Category = models.ParseCategory(string(expense.Category))

	if err := s.requireTrip(ctx, expense.TripID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO expenses (`+expenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		expense.ID, expense.TripID, expense.PayerID, expense.Description, expense.Amount,
		expense.OriginalAmount, expense.Currency, expense.ExchangeRate, string(expense.Category),
		expense.IsForecast, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx, s.q(
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`),
		expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves all expenses of a trip in the order they were recorded.
func (s *Store) ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		`SELECT `+expenseColumns+` FROM expenses WHERE trip_id = ? ORDER BY seq`),
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by trip: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense by ID.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM expenses WHERE id = ?"), expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return notFound("expense", expenseID)
	}
	return nil
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	var category string
	err := row.Scan(&e.ID, &e.TripID, &e.PayerID, &e.Description, &e.Amount, &e.OriginalAmount,
		&e.Currency, &e.ExchangeRate, &category, &e.IsForecast, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Category = models.ParseCategory(category)
	return e, nil
}
