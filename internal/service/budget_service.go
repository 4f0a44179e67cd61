package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// BudgetUtilization compares a configured limit with the trailing 30-day
// spend in that category. Lookup only; nothing is enforced.
type BudgetUtilization struct {
	Budget    domain.Budget
	Spent     float64
	Remaining float64
}

// BudgetService manages per-category expense limits. Budgets are
// expense-oriented: income categories are rejected.
type BudgetService interface {
	SetLimit(ctx context.Context, userID int64, category string, limit float64) (*domain.Budget, error)
	GetLimit(ctx context.Context, userID int64, category string) (*domain.Budget, error)
	ListLimits(ctx context.Context, userID int64) ([]domain.Budget, error)
	Utilization(ctx context.Context, userID int64, category string) (*BudgetUtilization, error)
}

type budgetService struct {
	budgets      repository.BudgetRepository
	transactions repository.TransactionRepository
	now          func() time.Time
}

func NewBudgetService(budgets repository.BudgetRepository, transactions repository.TransactionRepository) BudgetService {
	return &budgetService{
		budgets:      budgets,
		transactions: transactions,
		now:          time.Now,
	}
}

// SetLimit creates a budget for (user, category). A second budget for the
// same pair fails with repository.ErrConflict and leaves the existing one
// unchanged; this is creation-time uniqueness, not an upsert.
func (s *budgetService) SetLimit(ctx context.Context, userID int64, category string, limit float64) (*domain.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validationErrorf("category", "category is required")
	}
	if !domain.ValidCategory(domain.KindExpense, category) {
		return nil, validationErrorf("category", "%q is not a valid expense category", category)
	}
	if err := validateAmount(limit); err != nil {
		return nil, validationErrorf("limit", "limit must be a non-negative finite number")
	}

	budget := &domain.Budget{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: category,
		Limit:    limit,
	}

	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) GetLimit(ctx context.Context, userID int64, category string) (*domain.Budget, error) {
	return s.budgets.GetByCategory(ctx, userID, strings.TrimSpace(category))
}

func (s *budgetService) ListLimits(ctx context.Context, userID int64) ([]domain.Budget, error) {
	return s.budgets.List(ctx, userID)
}

func (s *budgetService) Utilization(ctx context.Context, userID int64, category string) (*BudgetUtilization, error) {
	budget, err := s.GetLimit(ctx, userID, category)
	if err != nil {
		return nil, err
	}

	expenses, err := s.transactions.ListByKind(ctx, userID, domain.KindExpense)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().UTC().Add(-DefaultRecentWindow)
	var spent float64
	for i := range expenses {
		if expenses[i].Category != budget.Category || expenses[i].Date.Before(cutoff) {
			continue
		}
		spent += expenses[i].Amount
	}

	return &BudgetUtilization{
		Budget:    *budget,
		Spent:     spent,
		Remaining: budget.Limit - spent,
	}, nil
}
