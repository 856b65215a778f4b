// Package storage provides the SQLite persistence layer for flowledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidAccount = errors.New("invalid account")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAccount validates an account before persisting.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if account.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	if !model.ValidAccountKind(account.Kind) {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAccount, account.Kind)
	}
	return nil
}

// validateTransaction delegates to the model's own invariants.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	return txn.Validate()
}

// validateRule delegates to the model's own invariants.
func validateRule(rule *model.RecurringRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	return rule.Validate()
}
