package predictions

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

type stubClassifier struct {
	outcome domain.Outcome
	err     error
}

func (s stubClassifier) Classify(ctx context.Context, image []byte) (domain.Outcome, error) {
	return s.outcome, s.err
}

type fakeRepo struct {
	saved   []*domain.Prediction
	saveErr error
	listErr error
}

func (f *fakeRepo) Save(ctx context.Context, p *domain.Prediction) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]*domain.Prediction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.saved, nil
}

type fakeArchive struct {
	keys []string
	err  error
}

func (f *fakeArchive) Archive(ctx context.Context, key string, image []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "http://archive/" + key, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestPredictPersistsConsistentRecord(t *testing.T) {
	repo := &fakeRepo{}
	svc := &Service{
		Repo:       repo,
		Classifier: stubClassifier{outcome: domain.Outcome{Confidence: 93, Label: domain.LabelCancer}},
		Clock:      fixedClock{t: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
	}

	p, err := svc.Predict(context.Background(), PredictCommand{Image: []byte("png-bytes")})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if !uuidShape.MatchString(string(p.ID)) {
		t.Errorf("id not uuid shaped: %q", p.ID)
	}
	if p.Result != domain.LabelCancer {
		t.Errorf("result: got %q", p.Result)
	}
	if p.Suggestion != "Segera periksa ke dokter!" {
		t.Errorf("suggestion: got %q", p.Suggestion)
	}
	if p.CreatedAt != "2024-05-01T10:30:00.000Z" {
		t.Errorf("createdAt: got %q", p.CreatedAt)
	}

	if len(repo.saved) != 1 || repo.saved[0] != p {
		t.Fatalf("record not persisted before returning: %+v", repo.saved)
	}
}

func TestPredictClassifierErrorSkipsSave(t *testing.T) {
	repo := &fakeRepo{}
	svc := &Service{
		Repo:       repo,
		Classifier: stubClassifier{err: domain.ErrDecode},
		Clock:      fixedClock{t: time.Now()},
	}

	if _, err := svc.Predict(context.Background(), PredictCommand{Image: []byte("junk")}); !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("want ErrDecode, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Errorf("nothing should be persisted on classify failure")
	}
}

func TestPredictSaveFailureFailsRequest(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("connection refused")}
	svc := &Service{
		Repo:       repo,
		Classifier: stubClassifier{outcome: domain.Outcome{Confidence: 10, Label: domain.LabelNonCancer}},
		Clock:      fixedClock{t: time.Now()},
	}

	p, err := svc.Predict(context.Background(), PredictCommand{Image: []byte("png-bytes")})
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
	if p != nil {
		t.Errorf("no partial success: record must not be returned on failed save")
	}
}

func TestPredictArchiveFailureIsBestEffort(t *testing.T) {
	repo := &fakeRepo{}
	svc := &Service{
		Repo:       repo,
		Classifier: stubClassifier{outcome: domain.Outcome{Confidence: 93, Label: domain.LabelCancer}},
		Archive:    &fakeArchive{err: errors.New("bucket gone")},
		Clock:      fixedClock{t: time.Now()},
	}

	if _, err := svc.Predict(context.Background(), PredictCommand{Image: []byte("png-bytes")}); err != nil {
		t.Fatalf("archive failure must not fail the request: %v", err)
	}
	if len(repo.saved) != 1 {
		t.Errorf("record should still be persisted")
	}
}

func TestPredictArchivesUnderPredictionKey(t *testing.T) {
	arc := &fakeArchive{}
	svc := &Service{
		Repo:       &fakeRepo{},
		Classifier: stubClassifier{outcome: domain.Outcome{Confidence: 20, Label: domain.LabelNonCancer}},
		Archive:    arc,
		Clock:      fixedClock{t: time.Now()},
	}

	p, err := svc.Predict(context.Background(), PredictCommand{Image: []byte("png-bytes"), ContentType: "image/png"})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(arc.keys) != 1 || arc.keys[0] != "predictions/"+string(p.ID) {
		t.Errorf("archive key: got %v", arc.keys)
	}
}

func TestHistoriesEmptyStoreReturnsEmptySlice(t *testing.T) {
	svc := &Service{Repo: &fakeRepo{}, Clock: fixedClock{t: time.Now()}}

	list, err := svc.Histories(context.Background())
	if err != nil {
		t.Fatalf("histories: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("want non-nil empty slice, got %#v", list)
	}
}

func TestHistoriesWrapsStoreError(t *testing.T) {
	svc := &Service{Repo: &fakeRepo{listErr: errors.New("timeout")}, Clock: fixedClock{t: time.Now()}}

	if _, err := svc.Histories(context.Background()); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}
