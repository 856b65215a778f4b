package model

import (
	"fmt"
	"time"
)

// TransactionKind distinguishes expenses, income, and transfers.
type TransactionKind string

const (
	// KindExpense represents money leaving an account.
	KindExpense TransactionKind = "expense"
	// KindIncome represents money entering an account.
	KindIncome TransactionKind = "income"
	// KindTransfer represents money moving between two accounts.
	KindTransfer TransactionKind = "transfer"
)

// ValidTransactionKind reports whether k is a known transaction kind.
func ValidTransactionKind(k TransactionKind) bool {
	switch k {
	case KindExpense, KindIncome, KindTransfer:
		return true
	}
	return false
}

// Transaction is a single ledger entry. Amount is always non-negative;
// the sign is implied by Kind. CounterpartyAccountID is set only for
// transfers (the destination); CategoryID only for expense/income.
// Once created a transaction is immutable except for the IsCleared flag;
// corrective edits are modeled as an upsert with the same id.
type Transaction struct {
	Date                  time.Time
	ID                    string
	Kind                  TransactionKind
	Amount                Money
	AccountID             string
	CounterpartyAccountID string
	CategoryID            string
	Note                  string
	IsCleared             bool
}

// Validate checks the structural invariants on a transaction.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction missing id")
	}
	if !ValidTransactionKind(t.Kind) {
		return fmt.Errorf("invalid transaction kind %q", t.Kind)
	}
	if t.Amount.Cents < 0 {
		return fmt.Errorf("transaction amount must be non-negative, got %d", t.Amount.Cents)
	}
	if t.AccountID == "" {
		return fmt.Errorf("transaction missing account id")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction missing date")
	}
	switch t.Kind {
	case KindTransfer:
		if t.CounterpartyAccountID == "" {
			return fmt.Errorf("transfer missing counterparty account id")
		}
		if t.CategoryID != "" {
			return fmt.Errorf("transfer must not carry a category")
		}
	case KindExpense, KindIncome:
		if t.CounterpartyAccountID != "" {
			return fmt.Errorf("%s must not carry a counterparty account", t.Kind)
		}
	}
	return nil
}
