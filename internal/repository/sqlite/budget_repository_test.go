package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

func TestBudgetRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetRepository(db)
	ctx := context.Background()
	userID := createTestUser(t, db, "a@example.com")

	budget := &domain.Budget{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: "Food",
		Limit:    300,
	}
	require.NoError(t, repo.Create(ctx, budget))

	got, err := repo.GetByCategory(ctx, userID, "Food")
	require.NoError(t, err)
	require.Equal(t, budget.ID, got.ID)
	require.Equal(t, 300.0, got.Limit)

	_, err = repo.GetByCategory(ctx, userID, "Bills")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBudgetRepository_CompoundUniqueness(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetRepository(db)
	ctx := context.Background()
	first := createTestUser(t, db, "a@example.com")
	second := createTestUser(t, db, "b@example.com")

	require.NoError(t, repo.Create(ctx, &domain.Budget{
		ID: uuid.NewString(), UserID: first, Category: "Food", Limit: 300,
	}))

	// same (user, category) pair is rejected by the store
	err := repo.Create(ctx, &domain.Budget{
		ID: uuid.NewString(), UserID: first, Category: "Food", Limit: 500,
	})
	require.ErrorIs(t, err, repository.ErrConflict)

	// existing row unchanged
	got, err := repo.GetByCategory(ctx, first, "Food")
	require.NoError(t, err)
	require.Equal(t, 300.0, got.Limit)

	// same category for another user is fine
	require.NoError(t, repo.Create(ctx, &domain.Budget{
		ID: uuid.NewString(), UserID: second, Category: "Food", Limit: 100,
	}))
}

func TestBudgetRepository_ListScoped(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetRepository(db)
	ctx := context.Background()
	first := createTestUser(t, db, "a@example.com")
	second := createTestUser(t, db, "b@example.com")

	for _, category := range []string{"Food", "Bills"} {
		require.NoError(t, repo.Create(ctx, &domain.Budget{
			ID: uuid.NewString(), UserID: first, Category: category, Limit: 100,
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Budget{
		ID: uuid.NewString(), UserID: second, Category: "Food", Limit: 50,
	}))

	budgets, err := repo.List(ctx, first)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	require.Equal(t, "Bills", budgets[0].Category)
	require.Equal(t, "Food", budgets[1].Category)
}
