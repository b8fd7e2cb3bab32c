package mysql

import (
	"context"
	"database/sql"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Save insert/update Prediction record, keyed by id. Retry dengan id yang
// sama = overwrite, last write wins.
func (r *PredictionRepository) Save(ctx context.Context, p *domain.Prediction) error {
	const q = `
INSERT INTO predictions (id, result, suggestion, created_at)
VALUES (?,?,?,?)
ON DUPLICATE KEY UPDATE
 result=VALUES(result),
 suggestion=VALUES(suggestion),
 created_at=VALUES(created_at);
`
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
