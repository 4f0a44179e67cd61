package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// limit is a SQL keyword, so the column is named limit_amount.
const createBudgetsTable = `
CREATE TABLE IF NOT EXISTS budgets (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	limit_amount REAL NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE (user_id, category)
);
`

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) repository.BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBudgetsTable); err != nil {
		return fmt.Errorf("create budgets table: %w", err)
	}
	return nil
}

func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	budget.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO budgets (id, user_id, category, limit_amount, created_at)
VALUES (?, ?, ?, ?, ?)`,
		budget.ID,
		budget.UserID,
		budget.Category,
		budget.Limit,
		budget.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("insert budget: %w", repository.ErrConflict)
		}
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *BudgetRepository) GetByCategory(ctx context.Context, userID int64, category string) (*domain.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, category, limit_amount, created_at
FROM budgets
WHERE user_id = ? AND category = ?`,
		userID,
		category,
	)

	var budget domain.Budget
	if err := row.Scan(
		&budget.ID,
		&budget.UserID,
		&budget.Category,
		&budget.Limit,
		&budget.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	return &budget, nil
}

func (r *BudgetRepository) List(ctx context.Context, userID int64) ([]domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, category, limit_amount, created_at
FROM budgets
WHERE user_id = ?
ORDER BY category`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.Category,
			&budget.Limit,
			&budget.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}
