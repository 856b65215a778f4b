// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// TransactionQuery defines filtering options for transaction listings.
// Zero-valued fields are ignored.
type TransactionQuery struct {
	Month       *time.Time
	AccountID   string
	CategoryID  string
	Search      string
	ClearedOnly bool
}

// Storage defines the contract for the persistence layer. The engine treats
// it as a shared, externally-owned resource: lookups are re-fetched on every
// invocation rather than cached across calls.
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	// Category operations
	SaveCategory(ctx context.Context, category *model.Category) error
	ListCategories(ctx context.Context, kind *model.CategoryKind) ([]model.Category, error)

	// Transaction operations. SaveTransaction is an upsert by id.
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, query TransactionQuery) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// Recurring rule operations
	SaveRecurringRule(ctx context.Context, rule *model.RecurringRule) error
	GetRecurringRule(ctx context.Context, id string) (*model.RecurringRule, error)
	ListActiveRecurringRules(ctx context.Context) ([]model.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, id string) error

	// Key-value settings, used for the automation trigger state and the
	// serialized salary plan document.
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error

	// Salary plan document
	LoadSalaryPlan(ctx context.Context) (*model.SalaryPlan, error)
	SaveSalaryPlan(ctx context.Context, plan *model.SalaryPlan) error

	// Reporting
	MonthSummary(ctx context.Context, month time.Time) (*MonthSummary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// MonthSummary aggregates a calendar month's activity. Transfers move money
// between accounts and count toward neither side.
type MonthSummary struct {
	Month        time.Time
	Income       model.Money
	Expense      model.Money
	Net          model.Money
	Transactions int
}
