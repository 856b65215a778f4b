package model

import "time"

// AccountKind classifies an account.
type AccountKind string

const (
	// AccountCurrent is a day-to-day checking account.
	AccountCurrent AccountKind = "current"
	// AccountSavings is a savings account.
	AccountSavings AccountKind = "savings"
	// AccountCreditCard is a credit card account.
	AccountCreditCard AccountKind = "creditCard"
	// AccountCash is physical cash.
	AccountCash AccountKind = "cash"
)

// ValidAccountKind reports whether k is one of the known account kinds.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case AccountCurrent, AccountSavings, AccountCreditCard, AccountCash:
		return true
	}
	return false
}

// Account represents a money account. Identity is ID; Name is also used as
// a human-facing lookup key by the salary allocation plan.
type Account struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Kind      AccountKind
	Balance   Money
}
