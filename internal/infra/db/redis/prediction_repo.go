// Package redis provides a key-addressed document backend for prediction
// records: one JSON document per prediction id, no expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

const keyPrefix = "asclepius:prediction:"

type PredictionRepository struct {
	client *redis.Client
}

// NewPredictionRepository connects and pings the Redis backend. Records are
// stored without TTL: the service never deletes or expires predictions.
func NewPredictionRepository(addr, password string, db int) (*PredictionRepository, error) {
	if addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &PredictionRepository{client: client}, nil
}

// Save writes the document keyed by the prediction id. SET semantics give the
// overwrite-by-key idempotence the store contract asks for.
func (r *PredictionRepository) Save(ctx context.Context, p *domain.Prediction) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}
	return r.client.Set(ctx, keyPrefix+string(p.ID), data, 0).Err()
}

// ListAll scans the prediction keyspace and fetches every document. Order
// follows SCAN, which is unspecified.
func (r *PredictionRepository) ListAll(ctx context.Context) ([]*domain.Prediction, error) {
	var out []*domain.Prediction

	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan predictions: %w", err)
	}
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch predictions: %w", err)
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// key deleted between SCAN and MGET
			continue
		}
		var p domain.Prediction
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, fmt.Errorf("unmarshal prediction: %w", err)
		}
		out = append(out, &p)
	}
	return out, nil
}

// Ping implements the health-check hook.
func (r *PredictionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *PredictionRepository) Close() error {
	return r.client.Close()
}
