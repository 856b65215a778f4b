package model

import "time"

// CategoryKind indicates whether a category classifies expenses or income.
type CategoryKind string

const (
	// CategoryExpense represents categories for expense transactions.
	CategoryExpense CategoryKind = "expense"
	// CategoryIncome represents categories for income transactions.
	CategoryIncome CategoryKind = "income"
)

// ValidCategoryKind reports whether k is a known category kind.
func ValidCategoryKind(k CategoryKind) bool {
	return k == CategoryExpense || k == CategoryIncome
}

// Category classifies expense and income transactions.
// Transfers carry no category.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Kind      CategoryKind
	Icon      string
}
