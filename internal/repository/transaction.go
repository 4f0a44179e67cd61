package repository

import (
	"context"

	"finance-tracker/internal/domain"
)

// TransactionRepository exposes owner-scoped persistence for transactions.
// Every read and mutation filters by the owning user id; a record that exists
// but belongs to another user behaves exactly like a missing one (ErrNotFound).
//
// List and ListByKind order by date descending. Records sharing a date fall
// back to insertion order; stability beyond the date is not guaranteed.
type TransactionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tx *domain.Transaction) error
	Get(ctx context.Context, id string, userID int64) (*domain.Transaction, error)
	List(ctx context.Context, userID int64) ([]domain.Transaction, error)
	ListByKind(ctx context.Context, userID int64, kind domain.Kind) ([]domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id string, userID int64) error
}

// BudgetRepository manages per-category spending limits. The store enforces
// uniqueness of (user, category) as a compound constraint; a racing duplicate
// insert surfaces as ErrConflict.
type BudgetRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, budget *domain.Budget) error
	GetByCategory(ctx context.Context, userID int64, category string) (*domain.Budget, error)
	List(ctx context.Context, userID int64) ([]domain.Budget, error)
}
