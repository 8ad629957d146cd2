package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pig-persona/internal/service"
	"pig-persona/internal/vision"
)

// AnalysisHandler mantiene dependencias para el endpoint de análisis.
type AnalysisHandler struct {
	logger       *zap.Logger
	analysisServ *service.AnalysisService
}

// NewAnalysisHandler crea una instancia de AnalysisHandler.
func NewAnalysisHandler(logger *zap.Logger, analysisServ *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysisServ: analysisServ}
}

// CreateAnalysis maneja POST /analysis. La imagen llega como referencia
// resoluble (URL), nunca como bytes crudos.
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req struct {
		ImageURL string `json:"image_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analysis request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	report, err := h.analysisServ.Analyze(c.Request.Context(), req.ImageURL)
	if err != nil {
		h.logger.Error("analysis failed", zap.Error(err), zap.String("image_url", req.ImageURL))
		c.JSON(statusForAnalysisError(err), gin.H{"error": err.Error()})
		return
	}

	if !report.SubjectAccepted {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "image does not look like the expected subject",
			"analysis": report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": report})
}

func statusForAnalysisError(err error) int {
	switch {
	case errors.Is(err, vision.ErrNotConfigured), errors.Is(err, service.ErrAnalysisNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrAnalysisInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, vision.ErrSubmissionRejected),
		errors.Is(err, vision.ErrRemoteFailure),
		errors.Is(err, vision.ErrAcquisitionTimeout),
		errors.Is(err, vision.ErrMalformedResult):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
