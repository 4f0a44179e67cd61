package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// fakeTransactionRepo is an in-memory TransactionRepository mimicking the
// sqlite ordering: date descending, insertion order on ties.
type fakeTransactionRepo struct {
	records  []domain.Transaction
	failWith error
}

func (f *fakeTransactionRepo) Init(context.Context) error { return nil }

func (f *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	if f.failWith != nil {
		return f.failWith
	}
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	f.records = append(f.records, *tx)
	return nil
}

func (f *fakeTransactionRepo) Get(_ context.Context, id string, userID int64) (*domain.Transaction, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].UserID == userID {
			tx := f.records[i]
			return &tx, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTransactionRepo) List(_ context.Context, userID int64) ([]domain.Transaction, error) {
	return f.filtered(userID, "")
}

func (f *fakeTransactionRepo) ListByKind(_ context.Context, userID int64, kind domain.Kind) ([]domain.Transaction, error) {
	return f.filtered(userID, kind)
}

func (f *fakeTransactionRepo) filtered(userID int64, kind domain.Kind) ([]domain.Transaction, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Transaction
	for i := range f.records {
		if f.records[i].UserID != userID {
			continue
		}
		if kind != "" && f.records[i].Kind != kind {
			continue
		}
		out = append(out, f.records[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, tx *domain.Transaction) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.records {
		if f.records[i].ID == tx.ID && f.records[i].UserID == tx.UserID {
			tx.UpdatedAt = time.Now().UTC()
			f.records[i].Category = tx.Category
			f.records[i].Amount = tx.Amount
			f.records[i].Date = tx.Date
			f.records[i].Description = tx.Description
			f.records[i].Icon = tx.Icon
			f.records[i].UpdatedAt = tx.UpdatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTransactionRepo) Delete(_ context.Context, id string, userID int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].UserID == userID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeBudgetRepo struct {
	budgets []domain.Budget
}

func (f *fakeBudgetRepo) Init(context.Context) error { return nil }

func (f *fakeBudgetRepo) Create(_ context.Context, budget *domain.Budget) error {
	for i := range f.budgets {
		if f.budgets[i].UserID == budget.UserID && f.budgets[i].Category == budget.Category {
			return repository.ErrConflict
		}
	}
	budget.CreatedAt = time.Now().UTC()
	f.budgets = append(f.budgets, *budget)
	return nil
}

func (f *fakeBudgetRepo) GetByCategory(_ context.Context, userID int64, category string) (*domain.Budget, error) {
	for i := range f.budgets {
		if f.budgets[i].UserID == userID && f.budgets[i].Category == category {
			budget := f.budgets[i]
			return &budget, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBudgetRepo) List(_ context.Context, userID int64) ([]domain.Budget, error) {
	var out []domain.Budget
	for i := range f.budgets {
		if f.budgets[i].UserID == userID {
			out = append(out, f.budgets[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

type fakeUserRepo struct {
	users  []domain.User
	nextID int64
}

func (f *fakeUserRepo) Init(context.Context) error { return nil }

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	for i := range f.users {
		if f.users[i].Email == email {
			return 0, repository.ErrConflict
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.Email = email
	f.users = append(f.users, *user)
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range f.users {
		if f.users[i].Email == email {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeUserRepo) SetAdmin(_ context.Context, id int64, admin bool) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].IsAdmin = admin
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.TransactionRepository = (*fakeTransactionRepo)(nil)
	_ repository.BudgetRepository     = (*fakeBudgetRepo)(nil)
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
)
