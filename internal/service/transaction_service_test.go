package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

func TestTransactionService_Create(t *testing.T) {
	repo := &fakeTransactionRepo{}
	svc := NewTransactionService(repo)

	created, err := svc.Create(context.Background(), 1, domain.KindExpense, TransactionInput{
		Category: "Food",
		Amount:   12.5,
		Date:     day(0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, int64(1), created.UserID)
	require.Equal(t, domain.KindExpense, created.Kind)
	require.Equal(t, 12.5, created.Amount)
	require.Len(t, repo.records, 1)
}

func TestTransactionService_CreateDefaultsDate(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionRepo{})

	before := time.Now().UTC()
	created, err := svc.Create(context.Background(), 1, domain.KindIncome, TransactionInput{
		Category: "Salary",
		Amount:   100,
	})
	require.NoError(t, err)
	require.False(t, created.Date.Before(before))
	require.False(t, created.Date.After(time.Now().UTC()))
}

func TestTransactionService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		kind  domain.Kind
		input TransactionInput
		field string
	}{
		{"missing category", domain.KindExpense, TransactionInput{Amount: 1}, "category"},
		{"invalid category for kind", domain.KindIncome, TransactionInput{Category: "Food", Amount: 1}, "category"},
		{"unknown category", domain.KindExpense, TransactionInput{Category: "Gambling", Amount: 1}, "category"},
		{"negative amount", domain.KindExpense, TransactionInput{Category: "Food", Amount: -1}, "amount"},
		{"nan amount", domain.KindExpense, TransactionInput{Category: "Food", Amount: math.NaN()}, "amount"},
		{"infinite amount", domain.KindExpense, TransactionInput{Category: "Food", Amount: math.Inf(1)}, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTransactionRepo{}
			svc := NewTransactionService(repo)

			_, err := svc.Create(context.Background(), 1, tt.kind, tt.input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
			// fail-fast: nothing reached the store
			require.Empty(t, repo.records)
		})
	}
}

func TestTransactionService_UpdatePatch(t *testing.T) {
	repo := &fakeTransactionRepo{records: []domain.Transaction{
		tx("e1", 1, domain.KindExpense, "Food", 50, day(0)),
	}}
	svc := NewTransactionService(repo)

	amount := 75.0
	note := "groceries"
	updated, err := svc.Update(context.Background(), "e1", 1, domain.KindExpense, TransactionPatch{
		Amount:      &amount,
		Description: &note,
	})
	require.NoError(t, err)
	require.Equal(t, 75.0, updated.Amount)
	require.Equal(t, "groceries", updated.Description)
	// untouched fields survive
	require.Equal(t, "Food", updated.Category)
	require.Equal(t, domain.KindExpense, updated.Kind)
}

func TestTransactionService_UpdateRevalidatesCategory(t *testing.T) {
	repo := &fakeTransactionRepo{records: []domain.Transaction{
		tx("e1", 1, domain.KindExpense, "Food", 50, day(0)),
	}}
	svc := NewTransactionService(repo)

	salary := "Salary" // income category on an expense record
	_, err := svc.Update(context.Background(), "e1", 1, domain.KindExpense, TransactionPatch{Category: &salary})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "category", verr.Field)
	require.Equal(t, "Food", repo.records[0].Category)
}

func TestTransactionService_ForeignRecordLooksMissing(t *testing.T) {
	repo := &fakeTransactionRepo{records: []domain.Transaction{
		tx("e1", 2, domain.KindExpense, "Food", 50, day(0)),
	}}
	svc := NewTransactionService(repo)

	amount := 1.0
	_, updateForeign := svc.Update(context.Background(), "e1", 1, domain.KindExpense, TransactionPatch{Amount: &amount})
	_, updateMissing := svc.Update(context.Background(), "nope", 1, domain.KindExpense, TransactionPatch{Amount: &amount})

	// a foreign id and a nonexistent id are indistinguishable
	require.ErrorIs(t, updateForeign, repository.ErrNotFound)
	require.ErrorIs(t, updateMissing, repository.ErrNotFound)
	require.Equal(t, updateForeign.Error(), updateMissing.Error())

	require.ErrorIs(t, svc.Delete(context.Background(), "e1", 1, domain.KindExpense), repository.ErrNotFound)
	require.Len(t, repo.records, 1)
	require.Equal(t, 50.0, repo.records[0].Amount)
}

func TestTransactionService_KindMismatchLooksMissing(t *testing.T) {
	repo := &fakeTransactionRepo{records: []domain.Transaction{
		tx("i1", 1, domain.KindIncome, "Salary", 100, day(0)),
	}}
	svc := NewTransactionService(repo)

	amount := 1.0
	_, err := svc.Update(context.Background(), "i1", 1, domain.KindExpense, TransactionPatch{Amount: &amount})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), "i1", 1, domain.KindExpense), repository.ErrNotFound)
}

func TestTransactionService_DeleteIdempotent(t *testing.T) {
	repo := &fakeTransactionRepo{records: []domain.Transaction{
		tx("e1", 1, domain.KindExpense, "Food", 50, day(0)),
	}}
	svc := NewTransactionService(repo)

	require.NoError(t, svc.Delete(context.Background(), "e1", 1, domain.KindExpense))
	require.Empty(t, repo.records)

	// deleting again reports not found, end state unchanged
	require.ErrorIs(t, svc.Delete(context.Background(), "e1", 1, domain.KindExpense), repository.ErrNotFound)
	require.Empty(t, repo.records)
}

func TestTransactionService_ListScopedByKind(t *testing.T) {
	repo := &fakeTransactionRepo{records: []domain.Transaction{
		tx("i1", 1, domain.KindIncome, "Salary", 100, day(0)),
		tx("e1", 1, domain.KindExpense, "Food", 50, day(-1)),
	}}
	svc := NewTransactionService(repo)

	income, err := svc.List(context.Background(), 1, domain.KindIncome)
	require.NoError(t, err)
	require.Len(t, income, 1)
	require.Equal(t, "i1", income[0].ID)
}
