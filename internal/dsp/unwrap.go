package dsp

import "math"

// Unwrap remove saltos maiores que π entre ângulos consecutivos somando
// múltiplos de 2π.
func Unwrap(phase []float64) []float64 {
	out := make([]float64, len(phase))
	if len(phase) == 0 {
		return out
	}

	out[0] = phase[0]
	correction := 0.0

	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		if math.Abs(d) >= math.Pi {
			dm := floorMod(d+math.Pi, 2*math.Pi) - math.Pi
			if dm == -math.Pi && d > 0 {
				dm = math.Pi
			}
			correction += dm - d
		}
		out[i] = phase[i] + correction
	}

	return out
}

func floorMod(a, m float64) float64 {
	return a - m*math.Floor(a/m)
}
