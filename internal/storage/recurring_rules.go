package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ehtishamkhalid92/flowledger/internal/common"
	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// SaveRecurringRule inserts or updates a recurring rule by id.
func (s *SQLiteStorage) SaveRecurringRule(ctx context.Context, rule *model.RecurringRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	query := `
		INSERT INTO recurring_rules (
			id, name, template_kind, template_amount_cents, template_currency,
			template_account_id, template_counterparty_id, template_category_id,
			template_note, recurrence_kind, recurrence_value, start_date, end_date, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			template_kind = excluded.template_kind,
			template_amount_cents = excluded.template_amount_cents,
			template_currency = excluded.template_currency,
			template_account_id = excluded.template_account_id,
			template_counterparty_id = excluded.template_counterparty_id,
			template_category_id = excluded.template_category_id,
			template_note = excluded.template_note,
			recurrence_kind = excluded.recurrence_kind,
			recurrence_value = excluded.recurrence_value,
			start_date = excluded.start_date,
			end_date = excluded.end_date`

	var endDate any
	if rule.EndDate != nil {
		endDate = *rule.EndDate
	}

	_, err := s.db.ExecContext(ctx, query,
		rule.ID, rule.Name,
		string(rule.Template.Kind), rule.Template.Amount.Cents, rule.Template.Amount.Currency,
		rule.Template.AccountID, nullable(rule.Template.CounterpartyAccountID),
		nullable(rule.Template.CategoryID), nullable(rule.Template.Note),
		string(rule.Recurrence.Kind), recurrenceValue(rule.Recurrence),
		rule.StartDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to save recurring rule: %w", err)
	}

	slog.Debug("saved recurring rule", "id", rule.ID, "name", rule.Name, "recurrence", rule.Recurrence.String())
	return nil
}

// GetRecurringRule returns the rule with the given id, or ErrNotFound.
func (s *SQLiteStorage) GetRecurringRule(ctx context.Context, id string) (*model.RecurringRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := selectRecurringRule + ` WHERE id = ?`
	rule, err := scanRecurringRule(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recurring rule %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring rule: %w", err)
	}
	return rule, nil
}

// ListActiveRecurringRules returns all active rules ordered by name.
func (s *SQLiteStorage) ListActiveRecurringRules(ctx context.Context) ([]model.RecurringRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := selectRecurringRule + ` WHERE is_active = 1 ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.RecurringRule
	for rows.Next() {
		rule, err := scanRecurringRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring rules: %w", err)
	}
	return rules, nil
}

// DeleteRecurringRule removes a rule by id.
func (s *SQLiteStorage) DeleteRecurringRule(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM recurring_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring rule: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("recurring rule %q: %w", id, common.ErrNotFound)
	}

	slog.Info("deleted recurring rule", "id", id)
	return nil
}

const selectRecurringRule = `
	SELECT id, name, template_kind, template_amount_cents, template_currency,
		template_account_id, template_counterparty_id, template_category_id,
		template_note, recurrence_kind, recurrence_value, start_date, end_date
	FROM recurring_rules`

func scanRecurringRule(row rowScanner) (*model.RecurringRule, error) {
	var (
		rule         model.RecurringRule
		kind         string
		cents        int64
		currency     string
		counterparty sql.NullString
		categoryID   sql.NullString
		note         sql.NullString
		recurKind    string
		recurValue   int
		endDate      sql.NullTime
	)
	err := row.Scan(&rule.ID, &rule.Name, &kind, &cents, &currency,
		&rule.Template.AccountID, &counterparty, &categoryID, &note,
		&recurKind, &recurValue, &rule.StartDate, &endDate)
	if err != nil {
		return nil, err
	}

	rule.Template.Kind = model.TransactionKind(kind)
	rule.Template.Amount = model.NewMoney(cents, currency)
	rule.Template.CounterpartyAccountID = counterparty.String
	rule.Template.CategoryID = categoryID.String
	rule.Template.Note = note.String

	switch model.RecurrenceKind(recurKind) {
	case model.RecurMonthly:
		rule.Recurrence = model.Monthly(recurValue)
	case model.RecurWeekly:
		rule.Recurrence = model.Weekly(recurValue)
	default:
		return nil, fmt.Errorf("unknown recurrence kind %q", recurKind)
	}

	if endDate.Valid {
		end := endDate.Time
		rule.EndDate = &end
	}
	return &rule, nil
}

func recurrenceValue(r model.Recurrence) int {
	if r.Kind == model.RecurWeekly {
		return r.Weekday
	}
	return r.MonthDay
}
