package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// TransactionInput carries the user-supplied fields for a new transaction.
// Date may be zero, in which time of creation is used.
type TransactionInput struct {
	Category    string
	Amount      float64
	Date        time.Time
	Description string
	Icon        string
}

// TransactionPatch carries the editable fields of a partial update. Nil
// pointers mean "leave unchanged"; kind and owner are never editable.
type TransactionPatch struct {
	Category    *string
	Amount      *float64
	Date        *time.Time
	Description *string
	Icon        *string
}

// TransactionService implements owner-scoped transaction CRUD. Records that
// exist under another user are reported as not found, never as forbidden.
type TransactionService interface {
	Create(ctx context.Context, userID int64, kind domain.Kind, input TransactionInput) (*domain.Transaction, error)
	List(ctx context.Context, userID int64, kind domain.Kind) ([]domain.Transaction, error)
	Update(ctx context.Context, id string, userID int64, kind domain.Kind, patch TransactionPatch) (*domain.Transaction, error)
	Delete(ctx context.Context, id string, userID int64, kind domain.Kind) error
}

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(transactions repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: transactions}
}

func (s *transactionService) Create(ctx context.Context, userID int64, kind domain.Kind, input TransactionInput) (*domain.Transaction, error) {
	if kind != domain.KindIncome && kind != domain.KindExpense {
		return nil, validationErrorf("kind", "%q is not a valid transaction kind", string(kind))
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, validationErrorf("category", "category is required")
	}
	if err := validateCategory(kind, category); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	tx := &domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        kind,
		Category:    category,
		Amount:      input.Amount,
		Date:        date,
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, userID int64, kind domain.Kind) ([]domain.Transaction, error) {
	return s.transactions.ListByKind(ctx, userID, kind)
}

func (s *transactionService) Update(ctx context.Context, id string, userID int64, kind domain.Kind, patch TransactionPatch) (*domain.Transaction, error) {
	tx, err := s.transactions.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if tx.Kind != kind {
		// an income id reached through the expense routes (or vice versa)
		// looks exactly like a missing record
		return nil, repository.ErrNotFound
	}

	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, validationErrorf("category", "category is required")
		}
		if err := validateCategory(tx.Kind, category); err != nil {
			return nil, err
		}
		tx.Category = category
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return nil, err
		}
		tx.Amount = *patch.Amount
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, validationErrorf("date", "date must not be empty")
		}
		tx.Date = *patch.Date
	}
	if patch.Description != nil {
		tx.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Icon != nil {
		tx.Icon = strings.TrimSpace(*patch.Icon)
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, id string, userID int64, kind domain.Kind) error {
	tx, err := s.transactions.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if tx.Kind != kind {
		return repository.ErrNotFound
	}
	return s.transactions.Delete(ctx, id, userID)
}

func validateCategory(kind domain.Kind, category string) error {
	if !domain.ValidCategory(kind, category) {
		return validationErrorf("category", "%q is not a valid %s category", category, strings.ToLower(string(kind)))
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return validationErrorf("amount", "amount must be a finite number")
	}
	if amount < 0 {
		return validationErrorf("amount", "amount must not be negative")
	}
	return nil
}
