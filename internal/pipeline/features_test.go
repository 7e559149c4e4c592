package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeaturesUniformMotion(t *testing.T) {
	n := 50
	in := Channels{T: ramp(n, 10), X: make([]float64, n), Y: constant(n, 5), P: constant(n, 0.4)}
	for i, v := range in.T {
		in.X[i] = 0.5 * v // 500 px/s
	}

	ft := ExtractFeatures(in)
	require.Len(t, ft, n)

	for i, row := range ft {
		assert.Equal(t, in.X[i], row[ColX])
		assert.Equal(t, 5.0, row[ColY])
		assert.InDelta(t, 500, row[ColVx], 1e-9, "vx[%d]", i)
		assert.InDelta(t, 0, row[ColVy], 1e-9)
		assert.InDelta(t, 500, row[ColSpeed], 1e-9)
		assert.InDelta(t, 0, row[ColTheta], 1e-9)
		assert.InDelta(t, 0, row[ColCurvature], 1e-9)
		assert.Equal(t, 0.4, row[ColPressure])
	}
}

func TestExtractFeaturesCircle(t *testing.T) {
	const (
		radius = 50.0
		omega  = 2.0 // rad/s
	)
	n := 600
	in := Channels{T: ramp(n, 10), X: make([]float64, n), Y: make([]float64, n), P: constant(n, 0.5)}
	for i, ms := range in.T {
		a := omega * ms / 1000
		in.X[i] = radius * math.Cos(a)
		in.Y[i] = radius * math.Sin(a)
	}

	ft := ExtractFeatures(in)

	for i := 2; i < n-2; i++ {
		assert.InEpsilon(t, radius*omega, ft[i][ColSpeed], 1e-3, "v[%d]", i)
		assert.InEpsilon(t, 1/radius, ft[i][ColCurvature], 1e-2, "k[%d]", i)
	}

	// Mais de uma volta: o ângulo desdobrado cresce sem saltos
	for i := 2; i < n-1; i++ {
		assert.InDelta(t, omega*0.01, ft[i][ColTheta]-ft[i-1][ColTheta], 1e-3, "θ[%d]", i)
	}
	assert.Greater(t, ft[n-2][ColTheta]-ft[1][ColTheta], 2*math.Pi)
}

func TestExtractFeaturesRepeatedTimestamps(t *testing.T) {
	in := Channels{
		T: []float64{0, 10, 10, 20, 30, 30, 40},
		X: []float64{0, 1, 2, 3, 4, 5, 6},
		Y: []float64{0, 0, 1, 1, 2, 2, 3},
		P: constant(7, 0.5),
	}

	ft := ExtractFeatures(in)
	for _, row := range ft {
		for c, v := range row {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "coluna %s", ColumnNames[c])
		}
		assert.LessOrEqual(t, row[ColCurvature], 10.0)
		assert.GreaterOrEqual(t, row[ColCurvature], 0.0)
	}
}

func TestExtractFeaturesStationaryPen(t *testing.T) {
	in := Channels{T: ramp(5, 10), X: constant(5, 3), Y: constant(5, 4), P: constant(5, 0.9)}

	for _, row := range ExtractFeatures(in) {
		assert.Zero(t, row[ColSpeed])
		assert.Zero(t, row[ColCurvature])
	}

	single := ExtractFeatures(Channels{T: []float64{0}, X: []float64{1}, Y: []float64{2}, P: []float64{0.3}})
	require.Len(t, single, 1)
	assert.Equal(t, Row{1, 2, 0, 0, 0, 0, 0, 0.3}, single[0])
}
