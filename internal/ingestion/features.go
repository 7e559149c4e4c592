package ingestion

import (
	"math"

	"github.com/montanaflynn/stats"

	"signature_go/internal/models"
)

// Summarize calcula distância total e velocidades instantâneas (px/s) do
// traço. Intervalos com Δt <= 0 entram na distância mas não nas velocidades.
func Summarize(points []models.StrokePoint, realLength int, durationMs int64) models.StrokeFeatures {
	features := models.StrokeFeatures{
		NumPoints:  len(points),
		RealLength: realLength,
		DurationMs: durationMs,
	}
	if len(points) < 2 {
		return features
	}

	var total float64
	velocities := make(stats.Float64Data, 0, len(points)-1)

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dist := math.Hypot(b.X-a.X, b.Y-a.Y)
		total += dist

		if dt := b.T - a.T; dt > 0 {
			velocities = append(velocities, dist/(float64(dt)/1000))
		}
	}

	features.TotalDistance = round2(total)

	if len(velocities) > 0 {
		mean, _ := stats.Mean(velocities)
		peak, _ := stats.Max(velocities)
		features.VelocityMean = round2(mean)
		features.VelocityMax = round2(peak)
	}

	return features
}

func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return r
}
