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
	"github.com/ehtishamkhalid92/flowledger/internal/service"
)

// SaveTransaction inserts or updates a transaction by id. Corrective edits
// from the UI arrive as an upsert with the same id.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			id, kind, amount_cents, currency, account_id,
			counterparty_account_id, category_id, note, date, is_cleared
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			amount_cents = excluded.amount_cents,
			currency = excluded.currency,
			account_id = excluded.account_id,
			counterparty_account_id = excluded.counterparty_account_id,
			category_id = excluded.category_id,
			note = excluded.note,
			date = excluded.date,
			is_cleared = excluded.is_cleared`

	_, err := s.db.ExecContext(ctx, query,
		txn.ID, string(txn.Kind), txn.Amount.Cents, txn.Amount.Currency,
		txn.AccountID, nullable(txn.CounterpartyAccountID), nullable(txn.CategoryID),
		nullable(txn.Note), txn.Date, txn.IsCleared)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	slog.Debug("saved transaction", "id", txn.ID, "kind", txn.Kind, "amount", txn.Amount.String())
	return nil
}

// GetTransactionByID returns the transaction with the given id, or
// ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := selectTransaction + ` WHERE id = ?`
	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns transactions matching the query, newest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, query service.TransactionQuery) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	sqlQuery := selectTransaction + ` WHERE 1=1`
	args := []any{}

	if query.Month != nil {
		start := time.Date(query.Month.Year(), query.Month.Month(), 1, 0, 0, 0, 0, query.Month.Location())
		end := start.AddDate(0, 1, 0)
		sqlQuery += ` AND date >= ? AND date < ?`
		args = append(args, start, end)
	}
	if query.AccountID != "" {
		sqlQuery += ` AND (account_id = ? OR counterparty_account_id = ?)`
		args = append(args, query.AccountID, query.AccountID)
	}
	if query.CategoryID != "" {
		sqlQuery += ` AND category_id = ?`
		args = append(args, query.CategoryID)
	}
	if query.ClearedOnly {
		sqlQuery += ` AND is_cleared = 1`
	}
	if query.Search != "" {
		sqlQuery += ` AND note LIKE ? COLLATE NOCASE`
		args = append(args, "%"+query.Search+"%")
	}
	sqlQuery += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
	}
	return nil
}

// MonthSummary aggregates income, expense, and net for a calendar month.
// Transfers are excluded from both sides.
func (s *SQLiteStorage) MonthSummary(ctx context.Context, month time.Time) (*service.MonthSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount_cents ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE date >= ? AND date < ?`

	var incomeCents, expenseCents int64
	var count int
	err := s.db.QueryRowContext(ctx, query, start, end).Scan(&incomeCents, &expenseCents, &count)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month summary: %w", err)
	}

	return &service.MonthSummary{
		Month:        start,
		Income:       model.NewMoney(incomeCents, model.DefaultCurrency),
		Expense:      model.NewMoney(expenseCents, model.DefaultCurrency),
		Net:          model.NewMoney(incomeCents-expenseCents, model.DefaultCurrency),
		Transactions: count,
	}, nil
}

const selectTransaction = `
	SELECT id, kind, amount_cents, currency, account_id,
		counterparty_account_id, category_id, note, date, is_cleared
	FROM transactions`

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn          model.Transaction
		kind         string
		cents        int64
		currency     string
		counterparty sql.NullString
		categoryID   sql.NullString
		note         sql.NullString
	)
	err := row.Scan(&txn.ID, &kind, &cents, &currency, &txn.AccountID,
		&counterparty, &categoryID, &note, &txn.Date, &txn.IsCleared)
	if err != nil {
		return nil, err
	}
	txn.Kind = model.TransactionKind(kind)
	txn.Amount = model.NewMoney(cents, currency)
	txn.CounterpartyAccountID = counterparty.String
	txn.CategoryID = categoryID.String
	txn.Note = note.String
	return &txn, nil
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
