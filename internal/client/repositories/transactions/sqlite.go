// Package transactions stores the expense tracker's income and expense
// entries.
package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, t models.Transaction) error
	Get(ctx context.Context, id string) (models.Transaction, error)
	Delete(ctx context.Context, id string) error
	// List returns newest first by date, then by insertion.
	List(ctx context.Context) ([]models.Transaction, error)
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, t models.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, title, amount, category, type, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Amount, string(t.Category), string(t.Type), t.Date)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, amount, category, type, date FROM transactions WHERE id = ?
	`, id)
	t, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, common.ErrNotFound
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return t, nil
}

// Delete returns common.ErrNotFound when nothing was removed.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, amount, category, type, date
		FROM transactions
		ORDER BY date DESC, created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (models.Transaction, error) {
	var (
		t        models.Transaction
		category string
		typ      string
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Amount, &category, &typ, &t.Date); err != nil {
		return models.Transaction{}, err
	}
	t.Category = models.Category(category)
	t.Type = models.TransactionType(typ)
	return t, nil
}
