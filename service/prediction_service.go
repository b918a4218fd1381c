package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sitecheck-backend/models"
	"sitecheck-backend/vision"
)

// Predictor produces a flat class-probability vector from a planar image
// tensor.
type Predictor interface {
	Predict(input []float32) ([]float32, error)
}

// PredictionService runs the upload-to-ranked-results pipeline:
// normalize, infer, rank. It holds no per-request state.
type PredictionService struct {
	predictor Predictor
	taxonomy  models.Taxonomy
	logger    *logrus.Logger
}

// PredictionServiceOption is a functional option for PredictionService
type PredictionServiceOption func(*PredictionService)

// WithPredictor sets the inference backend
func WithPredictor(p Predictor) PredictionServiceOption {
	return func(s *PredictionService) {
		s.predictor = p
	}
}

// WithTaxonomy overrides the default class taxonomy
func WithTaxonomy(taxonomy models.Taxonomy) PredictionServiceOption {
	return func(s *PredictionService) {
		s.taxonomy = taxonomy
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) PredictionServiceOption {
	return func(s *PredictionService) {
		s.logger = logger
	}
}

// NewPredictionService creates a new prediction service
func NewPredictionService(opts ...PredictionServiceOption) *PredictionService {
	s := &PredictionService{
		taxonomy: models.DefaultTaxonomy,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify normalizes the uploaded image, runs inference and ranks the
// resulting probability vector. Every failure is terminal; nothing is
// retried and no partial results are returned.
func (s *PredictionService) Classify(ctx context.Context, imageData []byte) ([]models.Prediction, error) {
	if s.predictor == nil {
		return nil, errors.New("predictor not set")
	}

	requestID := uuid.New()
	start := time.Now()

	tensor, err := vision.Normalize(imageData)
	if err != nil {
		return nil, err
	}
	normalizeDone := time.Now()

	probs, err := s.predictor.Predict(tensor)
	if err != nil {
		return nil, err
	}
	if len(probs) != len(s.taxonomy) {
		return nil, fmt.Errorf("model returned %d class scores, want %d", len(probs), len(s.taxonomy))
	}
	inferDone := time.Now()

	results := Rank(probs, s.taxonomy)
	rankDone := time.Now()

	s.logger.WithFields(logrus.Fields{
		"request_id":   requestID,
		"normalize_ms": normalizeDone.Sub(start).Milliseconds(),
		"inference_ms": inferDone.Sub(normalizeDone).Milliseconds(),
		"rank_ms":      rankDone.Sub(inferDone).Milliseconds(),
		"total_ms":     time.Since(start).Milliseconds(),
		"results":      len(results),
	}).Info("image classified")

	return results, nil
}
