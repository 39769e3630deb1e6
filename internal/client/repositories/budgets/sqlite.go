// Package budgets stores one spending limit per category.
package budgets

import (
	"context"
	"fmt"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/dbx"
)

type Repository interface {
	Upsert(ctx context.Context, b models.Budget) error
	List(ctx context.Context) ([]models.Budget, error)
	Delete(ctx context.Context, category models.Category) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, b models.Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (category, limit_amount) VALUES (?, ?)
		ON CONFLICT(category) DO UPDATE SET limit_amount = excluded.limit_amount
	`, string(b.Category), b.Limit)
	if err != nil {
		return fmt.Errorf("failed to upsert budget %s: %w", b.Category, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, category models.Category) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, string(category)); err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", category, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, limit_amount FROM budgets ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var out []models.Budget
	for rows.Next() {
		var (
			category string
			b        models.Budget
		)
		if err := rows.Scan(&category, &b.Limit); err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		b.Category = models.Category(category)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget rows: %w", err)
	}
	return out, nil
}
