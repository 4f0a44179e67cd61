package domain

import "time"

type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// Transaction represents a single income or expense record. Kind and UserID
// are fixed at creation; only category, amount, date and description are
// user-editable afterwards.
type Transaction struct {
	ID          string
	UserID      int64
	Kind        Kind
	Category    string
	Amount      float64
	Date        time.Time
	Description string
	Icon        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
