// Package progress records which videos were watched and how their quizzes
// went.
package progress

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/dbx"
)

type Repository interface {
	Upsert(ctx context.Context, p models.VideoProgress) error
	List(ctx context.Context) ([]models.VideoProgress, error)
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert replaces the stored row for p.VideoID.
func (r *SQLiteRepository) Upsert(ctx context.Context, p models.VideoProgress) error {
	var (
		score  sql.NullFloat64
		passed sql.NullBool
	)
	if p.QuizScore != nil {
		score = sql.NullFloat64{Float64: *p.QuizScore, Valid: true}
	}
	if p.QuizPassed != nil {
		passed = sql.NullBool{Bool: *p.QuizPassed, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO video_progress (video_id, completed, quiz_score, quiz_passed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			completed = excluded.completed,
			quiz_score = excluded.quiz_score,
			quiz_passed = excluded.quiz_passed
	`, p.VideoID, p.Completed, score, passed)
	if err != nil {
		return fmt.Errorf("failed to upsert progress %s: %w", p.VideoID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.VideoProgress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT video_id, completed, quiz_score, quiz_passed FROM video_progress ORDER BY video_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var out []models.VideoProgress
	for rows.Next() {
		var (
			p      models.VideoProgress
			score  sql.NullFloat64
			passed sql.NullBool
		)
		if err := rows.Scan(&p.VideoID, &p.Completed, &score, &passed); err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		if score.Valid {
			p.QuizScore = &score.Float64
		}
		if passed.Valid {
			p.QuizPassed = &passed.Bool
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress rows: %w", err)
	}
	return out, nil
}
