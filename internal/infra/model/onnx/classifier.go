package onnx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

// Metadata describes the model artifact next to the graph file.
type Metadata struct {
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	ImageSize   int     `json:"image_size"`
}

// Classifier wraps a single ONNX session shared by all requests. The session
// and its pre-allocated tensors are guarded by mu; sem bounds how many
// requests may be admitted into classification at once.
type Classifier struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	meta         Metadata
	sem          chan struct{}
}

// NewClassifier loads the graph and metadata once at startup. Any error here
// is fatal for the caller: the process must not start serving without a model.
func NewClassifier(modelPath, metadataPath string, maxInflight int) (*Classifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx environment: %w", err)
	}

	raw, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("read model metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse model metadata: %w", err)
	}
	if meta.ImageSize <= 0 {
		meta.ImageSize = 224
	}
	if len(meta.InputShape) == 0 {
		meta.InputShape = []int64{1, int64(meta.ImageSize), int64(meta.ImageSize), 3}
	}
	if len(meta.OutputShape) == 0 {
		meta.OutputShape = []int64{1, 1}
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	if maxInflight <= 0 {
		maxInflight = 4
	}

	return &Classifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		meta:         meta,
		sem:          make(chan struct{}, maxInflight),
	}, nil
}

// Classify implements predictions.Classifier: decode, resize, run forward
// inference, reduce the score vector to a confidence and a label.
func (c *Classifier) Classify(ctx context.Context, image []byte) (domain.Outcome, error) {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return domain.Outcome{}, fmt.Errorf("%w: %v", domain.ErrInference, ctx.Err())
	}
	defer func() { <-c.sem }()

	input, err := preprocess(image, c.meta.ImageSize)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	c.mu.Lock()
	copy(c.inputTensor.GetData(), input)
	runErr := c.session.Run()
	var scores []float32
	if runErr == nil {
		scores = append(scores, c.outputTensor.GetData()...)
	}
	c.mu.Unlock()

	if runErr != nil {
		return domain.Outcome{}, fmt.Errorf("%w: %v", domain.ErrInference, runErr)
	}
	if len(scores) == 0 {
		return domain.Outcome{}, fmt.Errorf("%w: empty score vector", domain.ErrInference)
	}

	max := scores[0]
	for _, v := range scores[1:] {
		if v > max {
			max = v
		}
	}

	confidence := float64(max) * 100
	return domain.Outcome{
		Confidence: confidence,
		Label:      domain.LabelFromConfidence(confidence),
	}, nil
}

// Ready reports whether the model is loaded, for health checks.
func (c *Classifier) Ready(ctx context.Context) error {
	if c.session == nil {
		return fmt.Errorf("model session not initialized")
	}
	return nil
}

// Close releases the session and tensors. Call on process shutdown only.
func (c *Classifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
