package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pig-persona/internal/domain"
	"pig-persona/internal/vision"
)

var (
	ErrAnalysisNotConfigured = errors.New("analysis service not configured")
	ErrAnalysisInvalidInput  = errors.New("analysis invalid input")
)

// RejectedSummary es la salida fija cuando el filtro de sujeto descarta la imagen.
const RejectedSummary = "The drawing does not look like a pig, so no reading was made."

// AnalysisReport es el resultado completo de un análisis. Valores por
// request: no hay estado compartido entre análisis concurrentes.
type AnalysisReport struct {
	ID              string                    `json:"id"`
	ImageRef        string                    `json:"image_ref"`
	SubjectAccepted bool                      `json:"subject_accepted"`
	Description     string                    `json:"description,omitempty"`
	Detection       domain.Detection          `json:"detection"`
	Traits          []domain.PersonalityTrait `json:"traits"`
	Summary         string                    `json:"summary"`
	AnalyzedAt      time.Time                 `json:"analyzed_at"`
}

// AnalysisService orquesta el pipeline completo: adquisición de la detección,
// filtro de sujeto, inferencia de rasgos y composición del resumen.
type AnalysisService struct {
	analyzer vision.Analyzer
	logger   *zap.Logger
}

// NewAnalysisService crea el servicio con sus dependencias.
func NewAnalysisService(analyzer vision.Analyzer, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{analyzer: analyzer, logger: logger}
}

// Analyze corre el pipeline sobre una referencia de imagen. Los errores del
// gateway se propagan tipados; el rechazo del filtro de sujeto NO es un
// error sino un reporte con SubjectAccepted=false que el caller debe
// ramificar. Un intento fallido no deja estado parcial: reintentar es
// reenviar un request fresco de punta a punta.
func (s *AnalysisService) Analyze(ctx context.Context, imageRef string) (AnalysisReport, error) {
	if s.analyzer == nil {
		return AnalysisReport{}, ErrAnalysisNotConfigured
	}
	if imageRef == "" {
		return AnalysisReport{}, ErrAnalysisInvalidInput
	}

	det, err := s.analyzer.AcquireDetection(ctx, imageRef)
	if err != nil {
		return AnalysisReport{}, fmt.Errorf("acquire detection: %w", err)
	}

	report := AnalysisReport{
		ID:          uuid.NewString(),
		ImageRef:    imageRef,
		Description: det.Description,
		Detection:   det,
		AnalyzedAt:  time.Now().UTC(),
	}

	if !IsExpectedSubject(det.Description) {
		s.logger.Info("subject rejected",
			zap.String("analysis_id", report.ID),
			zap.String("description", det.Description),
		)
		report.SubjectAccepted = false
		report.Summary = RejectedSummary
		return report, nil
	}

	report.SubjectAccepted = true
	report.Traits = InferTraits(det)
	report.Summary = ComposeSummary(report.Traits)

	s.logger.Info("analysis finished",
		zap.String("analysis_id", report.ID),
		zap.Int("traits", len(report.Traits)),
	)
	return report, nil
}
