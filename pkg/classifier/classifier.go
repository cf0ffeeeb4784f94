// Package classifier runs the on-device plant disease model used when the
// remote vision model is unavailable.
package classifier

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrModelUnavailable = errors.New("classifier model unavailable")
	ErrBadImage         = errors.New("image could not be decoded")
)

// Model maps a preprocessed 224x224 RGB tensor to class probabilities.
type Model interface {
	Predict(input []float32) ([]float32, error)
	Close() error
}

type Prediction struct {
	Label      string
	Confidence float64
}

// Service owns the loaded model and its labels. A Service without a model
// reports ErrModelUnavailable.
type Service struct {
	mu     sync.Mutex
	model  Model
	labels []string
}

func NewService(model Model, labels []string) *Service {
	return &Service{model: model, labels: labels}
}

func (s *Service) Ready() bool { return s != nil && s.model != nil }

// Classify returns the most probable label. Indices beyond the label list
// come back as "Unknown".
func (s *Service) Classify(img []byte) (Prediction, error) {
	if !s.Ready() {
		return Prediction{}, ErrModelUnavailable
	}
	input, err := Preprocess(img)
	if err != nil {
		return Prediction{}, err
	}

	s.mu.Lock()
	probs, err := s.model.Predict(input)
	s.mu.Unlock()
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	if len(probs) == 0 {
		return Prediction{}, errors.New("predict: empty output")
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	label := "Unknown"
	if best < len(s.labels) {
		label = s.labels[best]
	}
	return Prediction{Label: label, Confidence: float64(probs[best])}, nil
}

func (s *Service) Close() error {
	if !s.Ready() {
		return nil
	}
	return s.model.Close()
}

// LoadLabels reads one label per line, index-aligned with the model output.
func LoadLabels(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines, nil
}

// Load builds the Service at startup. Failures are logged and yield a Service
// that is not Ready; the process keeps serving.
func Load(modelPath, labelsPath, libPath string, log *zap.Logger) *Service {
	labels, err := LoadLabels(labelsPath)
	if err != nil {
		log.Warn("labels file not loaded", zap.String("path", labelsPath), zap.Error(err))
	}
	model, err := NewONNXModel(modelPath, libPath)
	if err != nil {
		log.Error("classifier model not loaded", zap.String("path", modelPath), zap.Error(err))
		return NewService(nil, labels)
	}
	log.Info("classifier model loaded", zap.String("path", modelPath), zap.Int("labels", len(labels)))
	return NewService(model, labels)
}
