package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signature_go/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		valid      int
		features   models.StrokeFeatures
		wantValid  bool
		confidence float64
	}{
		{
			name:       "traço firme e longo",
			valid:      250,
			features:   models.StrokeFeatures{VelocityMean: 2500, TotalDistance: 900},
			wantValid:  true,
			confidence: 0.90,
		},
		{
			name:       "poucos pontos válidos",
			valid:      90,
			features:   models.StrokeFeatures{VelocityMean: 2500, TotalDistance: 900},
			wantValid:  false,
			confidence: 0.70,
		},
		{
			name:       "velocidade fora da faixa constante",
			valid:      150,
			features:   models.StrokeFeatures{VelocityMean: 8000, TotalDistance: 900},
			wantValid:  true,
			confidence: 0.75,
		},
		{
			name:       "lento demais",
			valid:      300,
			features:   models.StrokeFeatures{VelocityMean: 300, TotalDistance: 900},
			wantValid:  false,
			confidence: 0.85,
		},
		{
			name:       "distância curta",
			valid:      300,
			features:   models.StrokeFeatures{VelocityMean: 2000, TotalDistance: 20},
			wantValid:  false,
			confidence: 0.90,
		},
		{
			name:       "rápido demais",
			valid:      110,
			features:   models.StrokeFeatures{VelocityMean: 25000, TotalDistance: 900},
			wantValid:  false,
			confidence: 0.65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(tt.valid, tt.features)
			assert.Equal(t, tt.wantValid, v.IsValid)
			assert.InDelta(t, tt.confidence, v.Confidence, 1e-9)
		})
	}
}
