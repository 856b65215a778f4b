package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
	"github.com/ehtishamkhalid92/flowledger/internal/service"
)

// Runner generates the transactions due on a given date from the active
// recurring rule set.
type Runner struct {
	storage service.Storage
}

// NewRunner creates a runner backed by the given storage.
func NewRunner(storage service.Storage) *Runner {
	return &Runner{storage: storage}
}

// RunForDate generates and persists one transaction for every active rule
// whose recurrence matches date, and returns the number created.
//
// The runner itself performs no deduplication: calling RunForDate twice for
// the same date produces duplicate transactions. The automation trigger's
// once-per-day stamp is the guard for the automatic path; manual runs are
// allowed to duplicate.
func (r *Runner) RunForDate(ctx context.Context, date time.Time) (int, error) {
	rules, err := r.storage.ListActiveRecurringRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring rules: %w", err)
	}

	created := 0
	for _, rule := range rules {
		if !Matches(rule, date) {
			continue
		}

		txn := buildFromTemplate(rule, date)
		if err := r.storage.SaveTransaction(ctx, &txn); err != nil {
			return created, fmt.Errorf("failed to save transaction for rule %q: %w", rule.Name, err)
		}
		created++

		slog.Debug("generated recurring transaction",
			"rule", rule.Name,
			"kind", txn.Kind,
			"amount", txn.Amount.String(),
			"date", date.Format("2006-01-02"))
	}

	slog.Info("recurring run complete",
		"date", date.Format("2006-01-02"),
		"rules", len(rules),
		"created", created)
	return created, nil
}

// buildFromTemplate stamps a rule's template with a fresh id and the
// candidate date. Generated transactions are marked cleared.
func buildFromTemplate(rule model.RecurringRule, date time.Time) model.Transaction {
	note := rule.Template.Note
	if note == "" {
		note = rule.Name
	}
	return model.Transaction{
		ID:                    uuid.NewString(),
		Kind:                  rule.Template.Kind,
		Amount:                rule.Template.Amount,
		AccountID:             rule.Template.AccountID,
		CounterpartyAccountID: rule.Template.CounterpartyAccountID,
		CategoryID:            rule.Template.CategoryID,
		Note:                  note,
		Date:                  date,
		IsCleared:             true,
	}
}
