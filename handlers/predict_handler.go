package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sitecheck-backend/models"
	"sitecheck-backend/vision"
)

// maxUploadSize bounds the multipart form we are willing to parse.
const maxUploadSize = 50 << 20 // 50MB

// Classifier runs the full image classification pipeline.
type Classifier interface {
	Classify(ctx context.Context, imageData []byte) ([]models.Prediction, error)
}

// PredictHandler handles HTTP requests for image classification
type PredictHandler struct {
	classifier Classifier
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(classifier Classifier) *PredictHandler {
	return &PredictHandler{classifier: classifier}
}

// Predict handles POST /api/predict. It expects a multipart form with a
// single file field named "image" and responds with the ranked
// prediction list.
func (h *PredictHandler) Predict(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse multipart form"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	predictions, err := h.classifier.Classify(c.Request.Context(), imageData)
	if err != nil {
		logrus.WithError(err).Error("Classification failed")
		status := http.StatusInternalServerError
		if errors.Is(err, vision.ErrDecode) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.PredictResponse{Predictions: predictions})
}
