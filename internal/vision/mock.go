package vision

import (
	"context"

	"pig-persona/internal/domain"
)

// MockAnalyzer permite tests sin llamar al servicio de visión real.
type MockAnalyzer struct {
	Detection domain.Detection
	Err       error
	Calls     int
}

func (m *MockAnalyzer) AcquireDetection(ctx context.Context, imageRef string) (domain.Detection, error) {
	m.Calls++
	return m.Detection, m.Err
}
