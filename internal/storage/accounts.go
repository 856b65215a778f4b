package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/common"
	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// SaveAccount inserts or updates an account by id.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (id, name, kind, balance_cents, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			balance_cents = excluded.balance_cents,
			currency = excluded.currency`

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.Name, string(account.Kind),
		account.Balance.Cents, account.Balance.Currency, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	slog.Debug("saved account", "id", account.ID, "name", account.Name)
	return nil
}

// GetAccount returns the account with the given id, or ErrNotFound.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, kind, balance_cents, currency, created_at
		FROM accounts
		WHERE id = ?`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, kind, balance_cents, currency, created_at
		FROM accounts
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account by id.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("account %q: %w", id, common.ErrNotFound)
	}

	slog.Info("deleted account", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		account  model.Account
		kind     string
		cents    int64
		currency string
	)
	if err := row.Scan(&account.ID, &account.Name, &kind, &cents, &currency, &account.CreatedAt); err != nil {
		return nil, err
	}
	account.Kind = model.AccountKind(kind)
	account.Balance = model.NewMoney(cents, currency)
	return &account, nil
}
