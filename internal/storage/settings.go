package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// salaryPlanKey is the settings key holding the serialized salary plan
// document.
const salaryPlanKey = "salary.plan.v1"

// GetSetting returns the value stored under key and whether it exists.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	return nil
}

// LoadSalaryPlan returns the stored salary plan, or nil when none has been
// saved yet.
func (s *SQLiteStorage) LoadSalaryPlan(ctx context.Context) (*model.SalaryPlan, error) {
	raw, found, err := s.GetSetting(ctx, salaryPlanKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var plan model.SalaryPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("malformed salary plan document: %w", err)
	}
	return &plan, nil
}

// SaveSalaryPlan stores the salary plan as a JSON document.
func (s *SQLiteStorage) SaveSalaryPlan(ctx context.Context, plan *model.SalaryPlan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan", ErrNilParameter)
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode salary plan: %w", err)
	}
	if err := s.SetSetting(ctx, salaryPlanKey, string(raw)); err != nil {
		return err
	}

	slog.Debug("saved salary plan", "source", plan.SourceAccountName, "items", len(plan.Items))
	return nil
}
