package domain

import "time"

// Budget is a per-category spending limit. At most one budget exists per
// (user, category) pair; budgets apply to expense categories only.
type Budget struct {
	ID        string
	UserID    int64
	Category  string
	Limit     float64
	CreatedAt time.Time
}
