package pipeline

import (
	"math"

	"signature_go/internal/dsp"
)

const (
	minTimeStep    = 0.001
	minCurvatureDn = 1e-10
	maxCurvature   = 10
)

// ExtractFeatures deriva o tensor (n, 8) a partir da sequência suavizada.
// Velocidades e acelerações usam diferenças centrais no interior e diferenças
// laterais nas bordas, com Δt em segundos (Δt nulo vira 1 ms).
func ExtractFeatures(in Channels) FeatureTensor {
	n := in.Len()
	ft := make(FeatureTensor, n)
	if n == 0 {
		return ft
	}

	dt := make([]float64, n-1)
	for i := range dt {
		dt[i] = (in.T[i+1] - in.T[i]) / 1000
		if dt[i] == 0 {
			dt[i] = minTimeStep
		}
	}

	vx := derivative(in.X, dt)
	vy := derivative(in.Y, dt)
	ax := derivative(vx, dt)
	ay := derivative(vy, dt)

	angle := make([]float64, n)
	for i := range angle {
		angle[i] = math.Atan2(vy[i], vx[i])
	}
	theta := dsp.Unwrap(angle)

	for i := range ft {
		speed2 := vx[i]*vx[i] + vy[i]*vy[i]
		den := math.Max(math.Pow(speed2, 1.5), minCurvatureDn)
		k := math.Abs(vx[i]*ay[i]-vy[i]*ax[i]) / den

		ft[i] = Row{
			in.X[i],
			in.Y[i],
			vx[i],
			vy[i],
			math.Sqrt(speed2),
			theta[i],
			math.Max(-maxCurvature, math.Min(k, maxCurvature)),
			in.P[i],
		}
	}

	return ft
}

// derivative calcula df/dt com dt[i] = t[i+1] - t[i]
func derivative(f, dt []float64) []float64 {
	n := len(f)
	d := make([]float64, n)
	if n < 2 {
		return d
	}

	if dt[0] > 0 {
		d[0] = (f[1] - f[0]) / dt[0]
	}
	if dt[n-2] > 0 {
		d[n-1] = (f[n-1] - f[n-2]) / dt[n-2]
	}
	for i := 1; i < n-1; i++ {
		avg := (dt[i-1] + dt[i]) / 2
		if avg > 0 {
			d[i] = (f[i+1] - f[i-1]) / (2 * avg)
		}
	}

	return d
}
