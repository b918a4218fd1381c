package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sitecheck-backend/service"
)

// AdviceHandler handles remediation advice requests
type AdviceHandler struct {
	advice *service.AdviceService
}

// NewAdviceHandler creates a new advice handler
func NewAdviceHandler(advice *service.AdviceService) *AdviceHandler {
	return &AdviceHandler{advice: advice}
}

// AdviceRequest is the body of POST /api/advice.
type AdviceRequest struct {
	Code string `json:"code" binding:"required"`
}

// Advise handles POST /api/advice.
func (h *AdviceHandler) Advise(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	text, err := h.advice.Advise(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdvisorNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("Advice generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": req.Code, "advice": text})
}
