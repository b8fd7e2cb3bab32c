package predictions

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/yogapw/asclepius/internal/application"
	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

// createdAt uses the same shape as JavaScript's Date.toISOString so history
// records stay byte-compatible with the previous backend.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// Service implements use-cases untuk Prediction.
// Aman dipakai concurrent: semua dependency shared bersifat read-only.
type Service struct {
	Repo       domain.Repository
	Classifier domain.Classifier
	Archive    domain.ImageArchive // opsional, nil kalau arsip gambar dimatikan
	Clock      application.Clock
}

// PredictCommand carries one upload through the pipeline.
type PredictCommand struct {
	Image       []byte
	ContentType string
}

// Predict jalankan classify → bangun record → persist → arsip opsional.
// A failed save fails the whole request; there is no partial success where
// the caller gets a record that was never stored.
func (s *Service) Predict(ctx context.Context, cmd PredictCommand) (*domain.Prediction, error) {
	outcome, err := s.Classifier.Classify(ctx, cmd.Image)
	if err != nil {
		return nil, err
	}

	p := domain.New(
		domain.PredictionID(uuid.New().String()),
		outcome.Label,
		s.Clock.Now().UTC().Format(createdAtLayout),
	)

	if err := s.Repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	// Arsip best-effort: record sudah durable, gagal upload cuma di-log.
	if s.Archive != nil {
		key := fmt.Sprintf("predictions/%s", p.ID)
		if _, aerr := s.Archive.Archive(ctx, key, cmd.Image, cmd.ContentType); aerr != nil {
			log.Printf("image archive failed for prediction %s: %v", p.ID, aerr)
		}
	}

	return p, nil
}

// Histories ambil semua record dari store.
func (s *Service) Histories(ctx context.Context) ([]*domain.Prediction, error) {
	list, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if list == nil {
		list = []*domain.Prediction{}
	}
	return list, nil
}
