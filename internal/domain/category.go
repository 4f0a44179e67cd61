package domain

// Fixed category sets per transaction kind. Matching is exact and
// case-sensitive.
var (
	IncomeCategories = []string{
		"Salary",
		"Bonus",
		"Freelance",
		"Investment",
		"Other",
	}

	ExpenseCategories = []string{
		"Food",
		"Transport",
		"Bills",
		"Healthcare",
		"Entertainment",
		"Shopping",
		"Education",
		"Savings",
		"Other",
	}
)

// Categories returns the permitted category set for the given kind.
func Categories(kind Kind) []string {
	switch kind {
	case KindIncome:
		return IncomeCategories
	case KindExpense:
		return ExpenseCategories
	default:
		return nil
	}
}

// ValidCategory reports whether category belongs to the set for kind.
func ValidCategory(kind Kind, category string) bool {
	for _, c := range Categories(kind) {
		if c == category {
			return true
		}
	}
	return false
}
