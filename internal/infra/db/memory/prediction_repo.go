// Package memory holds prediction records in process memory. Meant for dev
// mode and tests; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

type PredictionRepository struct {
	mu      sync.RWMutex
	records map[domain.PredictionID]domain.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{
		records: make(map[domain.PredictionID]domain.Prediction),
	}
}

// Save stores a copy keyed by id, overwriting any previous value.
func (r *PredictionRepository) Save(ctx context.Context, p *domain.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[p.ID] = *p
	return nil
}

// ListAll returns copies of every stored record in map order.
func (r *PredictionRepository) ListAll(ctx context.Context) ([]*domain.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Prediction, 0, len(r.records))
	for _, p := range r.records {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}
