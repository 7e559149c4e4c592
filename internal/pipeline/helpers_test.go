package pipeline

import (
	"math"

	"signature_go/internal/models"
)

// signature gera um traço sintético com velocidade e pressão variáveis
func signature(n int, stepMs int64) []models.StrokePoint {
	points := make([]models.StrokePoint, n)
	for i := range points {
		s := float64(i) / float64(n-1)
		points[i] = models.StrokePoint{
			X: 100 + 300*s + 60*math.Sin(2*math.Pi*3*s),
			Y: 200 + 80*math.Sin(2*math.Pi*2*s) + 20*math.Cos(2*math.Pi*5*s),
			T: 1000 + int64(i)*stepMs,
			P: 0.5 + 0.3*math.Sin(2*math.Pi*s),
		}
	}
	return points
}

func ramp(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
