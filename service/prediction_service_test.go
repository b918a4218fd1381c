package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"sitecheck-backend/models"
	"sitecheck-backend/vision"
)

type stubPredictor struct {
	probs []float32
	err   error
	seen  []float32
}

func (p *stubPredictor) Predict(input []float32) ([]float32, error) {
	p.seen = input
	return p.probs, p.err
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPredictionService_Classify(t *testing.T) {
	predictor := &stubPredictor{
		probs: []float32{0.9, 0.05, 0.01, 0.01, 0.005, 0.005, 0.005, 0.005, 0.003, 0.003, 0.002, 0.002},
	}
	svc := NewPredictionService(WithPredictor(predictor))

	results, err := svc.Classify(context.Background(), testPNG(t))
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "Violation - Guardrail", results[0].Prediction)
	require.Len(t, predictor.seen, vision.TensorSize)
}

func TestPredictionService_ClassifyDecodeError(t *testing.T) {
	svc := NewPredictionService(WithPredictor(&stubPredictor{}))

	_, err := svc.Classify(context.Background(), []byte("garbage"))
	require.ErrorIs(t, err, vision.ErrDecode)
}

func TestPredictionService_ClassifyScoreCountMismatch(t *testing.T) {
	svc := NewPredictionService(WithPredictor(&stubPredictor{probs: []float32{0.5, 0.5}}))

	_, err := svc.Classify(context.Background(), testPNG(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "class scores")
}

func TestPredictionService_CustomTaxonomyAndLogger(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	taxonomy := models.Taxonomy{
		{Code: "Unregistered", Phase: models.PhaseBefore},
		{Code: "Unregistered", Phase: models.PhaseAfter},
	}
	svc := NewPredictionService(
		WithPredictor(&stubPredictor{probs: []float32{0.7, 0.3}}),
		WithTaxonomy(taxonomy),
		WithLogger(logger),
	)

	results, err := svc.Classify(context.Background(), testPNG(t))
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Violation - Unregistered", results[0].Prediction)
	require.Equal(t, models.FallbackDescription, results[0].Caption)
}

func TestPredictionService_NoPredictor(t *testing.T) {
	svc := NewPredictionService()

	_, err := svc.Classify(context.Background(), testPNG(t))
	require.Error(t, err)
}
