package validator

import "signature_go/internal/models"

// Identidade devolvida pelo classificador simulado
const (
	MockUserID      = "6736369b910e1d313235ba06"
	MockMatchedUser = "usuario@example.com"
)

const (
	minValidPoints    = 100
	minVelocityPerMs  = 0.5
	maxVelocityPerMs  = 20.0
	minTotalDistance  = 50.0
	baseConfidence    = 0.75
	steadyVelocityMin = 1.0
	steadyVelocityMax = 5.0
)

// AnalyzedFeatures lista o que o classificador simulado considera
var AnalyzedFeatures = []string{
	"velocity_mean",
	"velocity_max",
	"total_distance",
	"pressure_variation",
	"num_points",
}

// Verdict é a decisão do classificador
type Verdict struct {
	IsValid    bool
	Confidence float64
}

// Classify decide de forma determinística a partir das amostras válidas do
// tensor e do resumo do traço. O resumo traz velocidades em px/s; os
// limiares são em px/ms.
func Classify(validPoints int, f models.StrokeFeatures) Verdict {
	velocity := f.VelocityMean / 1000

	valid := validPoints >= minValidPoints &&
		velocity >= minVelocityPerMs &&
		velocity <= maxVelocityPerMs &&
		f.TotalDistance >= minTotalDistance

	confidence := baseConfidence
	switch {
	case validPoints >= 200:
		confidence += 0.10
	case validPoints < 120:
		confidence -= 0.10
	}
	if velocity >= steadyVelocityMin && velocity <= steadyVelocityMax {
		confidence += 0.05
	}

	return Verdict{
		IsValid:    valid,
		Confidence: max(0, min(1, confidence)),
	}
}
