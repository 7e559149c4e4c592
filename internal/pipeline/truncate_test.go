package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tensorWithSpeed(speed []float64) FeatureTensor {
	ft := make(FeatureTensor, len(speed))
	for i, v := range speed {
		ft[i][ColSpeed] = v
		ft[i][ColX] = float64(i)
	}
	return ft
}

func TestTruncateShortInputUnchanged(t *testing.T) {
	ft := tensorWithSpeed(constant(250, 1))

	tr := Truncate(ft, 400)
	assert.Equal(t, ft, tr.Features)
	assert.Equal(t, 0, tr.Start)
	assert.Equal(t, 250, tr.End)
	assert.Len(t, tr.Indices(), 250)
}

func TestTruncateCenteredWindow(t *testing.T) {
	speed := constant(1000, 1.0)
	for i := 0; i < 100; i++ {
		speed[i] = 0.1
	}

	tr := Truncate(tensorWithSpeed(speed), 400)

	assert.Equal(t, 100, tr.WarmupEnd)
	assert.Equal(t, 950, tr.LiftingStart)
	assert.Equal(t, 325, tr.Start)
	assert.Equal(t, 725, tr.End)
	require.Len(t, tr.Features, 400)

	idx := tr.Indices()
	require.Len(t, idx, 400)
	assert.Equal(t, 325, idx[0])
	assert.Equal(t, 724, idx[399])
	for i, row := range tr.Features {
		assert.Equal(t, float64(idx[i]), row[ColX])
	}
}

func TestTruncateInteriorShorterThanTarget(t *testing.T) {
	speed := constant(500, 1.0)
	for i := 0; i < 150; i++ {
		speed[i] = 0
	}

	tr := Truncate(tensorWithSpeed(speed), 400)

	// Interior [150, 475) já cabe no alvo
	assert.Equal(t, 150, tr.Start)
	assert.Equal(t, 475, tr.End)
	assert.Len(t, tr.Features, 325)
}

func TestTruncateNonPositiveSpeed(t *testing.T) {
	tr := Truncate(tensorWithSpeed(constant(1000, -1)), 400)

	assert.Equal(t, 0, tr.WarmupEnd)
	// Interior [0, 950): centro 475
	assert.Equal(t, 275, tr.Start)
	assert.Equal(t, 675, tr.End)
}

func TestTruncateWarmupReachesLifting(t *testing.T) {
	speed := constant(500, 0)
	speed[490] = 5

	tr := Truncate(tensorWithSpeed(speed), 400)

	assert.Equal(t, 0, tr.WarmupEnd)
	assert.Equal(t, 475, tr.LiftingStart)
	assert.Len(t, tr.Features, 400)
	assert.Equal(t, 37, tr.Start)
}
