package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButterSections(t *testing.T) {
	sections, err := Butter(4, 0.8)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	// Passa-baixas: ganho unitário em DC
	assert.InDelta(t, 1.0, DCGain(sections), 1e-9)

	for _, s := range sections {
		// Zeros em z = -1 anulam Nyquist
		assert.InDelta(t, 0, s.B[0]-s.B[1]+s.B[2], 1e-12)
		// Polos dentro do círculo unitário
		assert.Less(t, s.A[2], 1.0)
		assert.Equal(t, 1.0, s.A[0])
	}
}

// polyMul multiplica polinômios em z^-1
func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

func TestButterMatchesReferenceCoefficients(t *testing.T) {
	sections, err := Butter(4, 0.8)
	require.NoError(t, err)

	b, a := []float64{1}, []float64{1}
	for _, s := range sections {
		b = polyMul(b, s.B[:])
		a = polyMul(a, s.A[:])
	}

	// butter(4, 0.8) do scipy
	wantB := []float64{0.43285, 1.73139, 2.59708, 1.73139, 0.43285}
	wantA := []float64{1, 2.36951, 2.31399, 1.05467, 0.18738}
	require.Len(t, b, len(wantB))
	require.Len(t, a, len(wantA))
	for i := range wantB {
		assert.InDelta(t, wantB[i], b[i], 1e-5, "b[%d]", i)
		assert.InDelta(t, wantA[i], a[i], 1e-5, "a[%d]", i)
	}
}

func TestButterOddOrder(t *testing.T) {
	sections, err := Butter(5, 0.3)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	last := sections[len(sections)-1]
	assert.Equal(t, 0.0, last.B[2])
	assert.Equal(t, 0.0, last.A[2])
	assert.InDelta(t, 1.0, DCGain(sections), 1e-9)
}

func TestButterInvalidArguments(t *testing.T) {
	_, err := Butter(0, 0.5)
	assert.Error(t, err)

	for _, wn := range []float64{0, 1, -0.2, 1.5, math.NaN()} {
		_, err := Butter(4, wn)
		assert.Error(t, err, "wn=%v", wn)
	}
}
