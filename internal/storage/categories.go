package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// SaveCategory inserts or updates a category by id.
func (s *SQLiteStorage) SaveCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.ID, "category.ID"); err != nil {
		return err
	}
	if err := validateString(category.Name, "category.Name"); err != nil {
		return err
	}
	if !model.ValidCategoryKind(category.Kind) {
		return fmt.Errorf("unknown category kind %q", category.Kind)
	}

	query := `
		INSERT INTO categories (id, name, kind, icon, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			icon = excluded.icon`

	createdAt := category.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.Name, string(category.Kind), category.Icon, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	slog.Debug("saved category", "id", category.ID, "name", category.Name)
	return nil
}

// ListCategories returns categories ordered by name, optionally filtered
// by kind.
func (s *SQLiteStorage) ListCategories(ctx context.Context, kind *model.CategoryKind) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, kind, icon, created_at
		FROM categories`
	args := []any{}
	if kind != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var (
			cat     model.Category
			rawKind string
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &rawKind, &cat.Icon, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Kind = model.CategoryKind(rawKind)
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
