package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

const (
	createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	category TEXT NOT NULL,
	amount REAL NOT NULL,
	date DATETIME NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

	createTransactionsUserDateIndex = `
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date DESC);
`

	createTransactionsUserKindIndex = `
CREATE INDEX IF NOT EXISTS idx_transactions_user_kind ON transactions(user_id, kind);
`

	selectTransactionColumns = `id, user_id, kind, category, amount, date, description, icon, created_at, updated_at`
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Init(ctx context.Context) error {
	for _, stmt := range []string{
		createTransactionsTable,
		createTransactionsUserDateIndex,
		createTransactionsUserKindIndex,
	} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init transactions table: %w", err)
		}
	}
	return nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO transactions (id, user_id, kind, category, amount, date, description, icon, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID,
		tx.UserID,
		string(tx.Kind),
		tx.Category,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.Icon,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Get(ctx context.Context, id string, userID int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectTransactionColumns+`
FROM transactions
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanTransaction(row)
}

func (r *TransactionRepository) List(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return r.query(ctx, `
SELECT `+selectTransactionColumns+`
FROM transactions
WHERE user_id = ?
ORDER BY date DESC, rowid`,
		userID,
	)
}

func (r *TransactionRepository) ListByKind(ctx context.Context, userID int64, kind domain.Kind) ([]domain.Transaction, error) {
	return r.query(ctx, `
SELECT `+selectTransactionColumns+`
FROM transactions
WHERE user_id = ? AND kind = ?
ORDER BY date DESC, rowid`,
		userID,
		string(kind),
	)
}

// Update persists the editable fields of tx, scoped by id and owner. Kind and
// owner are never rewritten.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	tx.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE transactions
SET category = ?, amount = ?, date = ?, description = ?, icon = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		tx.Category,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.Icon,
		tx.UpdatedAt,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transaction rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string, userID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM transactions WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transaction rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var kind string
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&kind,
			&tx.Category,
			&tx.Amount,
			&tx.Date,
			&tx.Description,
			&tx.Icon,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = domain.Kind(kind)
		records = append(records, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

func scanTransaction(row interface {
	Scan(dest ...any) error
}) (*domain.Transaction, error) {
	var tx domain.Transaction
	var kind string
	if err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&kind,
		&tx.Category,
		&tx.Amount,
		&tx.Date,
		&tx.Description,
		&tx.Icon,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Kind = domain.Kind(kind)
	return &tx, nil
}
