package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidCategory(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		category string
		want     bool
	}{
		{"income salary", KindIncome, "Salary", true},
		{"income other", KindIncome, "Other", true},
		{"expense food", KindExpense, "Food", true},
		{"expense savings", KindExpense, "Savings", true},
		{"expense category on income", KindIncome, "Food", false},
		{"income category on expense", KindExpense, "Salary", false},
		{"case sensitive", KindExpense, "food", false},
		{"empty category", KindIncome, "", false},
		{"unknown category", KindExpense, "Gambling", false},
		{"unknown kind", Kind("Transfer"), "Food", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidCategory(tt.kind, tt.category))
		})
	}
}

func TestCategories_DisjointSets(t *testing.T) {
	expense := make(map[string]bool)
	for _, c := range ExpenseCategories {
		expense[c] = true
	}
	for _, c := range IncomeCategories {
		if c == "Other" {
			continue // the one shared name
		}
		require.False(t, expense[c], "category %q appears in both sets", c)
	}
}
