package memory

import (
	"context"
	"testing"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

func TestSaveOverwritesByID(t *testing.T) {
	repo := NewPredictionRepository()
	ctx := context.Background()

	first := domain.New("id-1", domain.LabelNonCancer, "2024-01-01T00:00:00.000Z")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	// retry dengan id sama = overwrite, last write wins
	second := domain.New("id-1", domain.LabelCancer, "2024-01-01T00:00:01.000Z")
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("want 1 record, got %d", len(list))
	}
	if list[0].Result != domain.LabelCancer {
		t.Errorf("overwrite lost: %+v", list[0])
	}
}

func TestListAllReturnsCopies(t *testing.T) {
	repo := NewPredictionRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, domain.New("id-1", domain.LabelCancer, "2024-01-01T00:00:00.000Z")); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, _ := repo.ListAll(ctx)
	list[0].Result = domain.LabelNonCancer

	again, _ := repo.ListAll(ctx)
	if again[0].Result != domain.LabelCancer {
		t.Errorf("caller mutation leaked into store")
	}
}

func TestListAllEmpty(t *testing.T) {
	repo := NewPredictionRepository()

	list, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("want empty, got %d", len(list))
	}
}
