package predictions

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	// Save writes the record keyed by its ID. Retrying with the same ID
	// overwrites, last write wins.
	Save(ctx context.Context, p *Prediction) error
	// ListAll returns every stored record, order unspecified.
	ListAll(ctx context.Context) ([]*Prediction, error)
}

// Outcome hasil inferensi model
type Outcome struct {
	Confidence float64 `json:"confidence"`
	Label      Label   `json:"label"`
}

// Classifier port (interface untuk model inference)
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Outcome, error)
}

// ImageArchive port (penyimpanan opsional untuk gambar upload)
type ImageArchive interface {
	Archive(ctx context.Context, key string, image []byte, contentType string) (string, error)
}
