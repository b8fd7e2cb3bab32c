package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

type PredictionRepository struct{ db *sql.DB }

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

// Save insert/update Prediction record keyed by id (upsert, last write wins).
func (r *PredictionRepository) Save(ctx context.Context, p *domain.Prediction) error {
	const q = `
INSERT INTO predictions (id, result, suggestion, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET
 result = EXCLUDED.result,
 suggestion = EXCLUDED.suggestion,
 created_at = EXCLUDED.created_at;`

	_, err := r.db.ExecContext(ctx, q, p.ID, p.Result, p.Suggestion, p.CreatedAt)
	return err
}

// ListAll ambil semua record, tanpa jaminan urutan.
func (r *PredictionRepository) ListAll(ctx context.Context) ([]*domain.Prediction, error) {
	const q = `SELECT id, result, suggestion, created_at FROM predictions;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		if err := rows.Scan(&p.ID, &p.Result, &p.Suggestion, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
