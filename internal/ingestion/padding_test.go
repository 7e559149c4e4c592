package ingestion

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature_go/internal/config"
	"signature_go/internal/models"
)

func line(n int) []models.StrokePoint {
	points := make([]models.StrokePoint, n)
	for i := range points {
		points[i] = models.StrokePoint{
			X: float64(i) * 2,
			Y: float64(i),
			T: int64(i) * 10,
			P: 0.5,
		}
	}
	return points
}

var strategies = []string{config.PaddingLinearInterpolation, config.PaddingRepeatLast}

func TestPadLength(t *testing.T) {
	for _, strategy := range strategies {
		for _, n := range []int{1, 2, 3, 7, 60, 99, 100, 150} {
			out, err := Pad(line(n), 100, strategy)
			require.NoError(t, err)
			assert.Len(t, out, max(100, n), "%s n=%d", strategy, n)
		}
	}
}

func TestPadIdempotent(t *testing.T) {
	for _, strategy := range strategies {
		once, err := Pad(line(37), 100, strategy)
		require.NoError(t, err)
		twice, err := Pad(once, 100, strategy)
		require.NoError(t, err)
		assert.Equal(t, once, twice, strategy)
	}
}

func TestPadDoesNotMutateInput(t *testing.T) {
	in := line(10)
	snapshot := append([]models.StrokePoint(nil), in...)

	_, err := Pad(in, 100, config.PaddingLinearInterpolation)
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
}

func TestPadSinglePoint(t *testing.T) {
	p := models.StrokePoint{X: 12, Y: 34, T: 1000, P: 0.7}

	for _, strategy := range strategies {
		out, err := Pad([]models.StrokePoint{p}, 100, strategy)
		require.NoError(t, err)
		require.Len(t, out, 100)

		for i, q := range out {
			assert.Equal(t, p.X, q.X)
			assert.Equal(t, p.Y, q.Y)
			assert.Equal(t, p.P, q.P)
			assert.Equal(t, p.T+int64(i), q.T, "%s índice %d", strategy, i)
		}
	}
}

func TestPadLinearDistribution(t *testing.T) {
	// 4 pontos, 10 de alvo: 6 sintéticos em 3 segmentos, 2 por segmento
	in := []models.StrokePoint{
		{X: 0, Y: 0, T: 0, P: 0},
		{X: 3, Y: 0, T: 30, P: 0.3},
		{X: 6, Y: 0, T: 60, P: 0.6},
		{X: 9, Y: 0, T: 91, P: 0.9},
	}
	out, err := Pad(in, 10, config.PaddingLinearInterpolation)
	require.NoError(t, err)
	require.Len(t, out, 10)

	for i, p := range out {
		assert.InDelta(t, float64(i), p.X, 1e-9, "x[%d]", i)
	}
	assert.Equal(t, int64(10), out[1].T)
	assert.Equal(t, int64(20), out[2].T)
	// 60 + 31/3 arredondado
	assert.Equal(t, int64(70), out[7].T)
	assert.Equal(t, in[3], out[9])
}

func TestPadLinearUnevenSegments(t *testing.T) {
	assert.Equal(t, []int{3, 3, 2}, SegmentCounts(4, 12))
	assert.Equal(t, []int{98}, SegmentCounts(2, 100))
	assert.Equal(t, []int{}, SegmentCounts(1, 100))
	assert.Equal(t, []int{0, 0}, SegmentCounts(3, 3))
}

func TestSegmentCountsCoverMissingPoints(t *testing.T) {
	cases := [][2]int{{2, 100}, {4, 12}, {7, 100}, {33, 100}, {60, 100}, {99, 100}, {100, 100}}
	for _, c := range cases {
		n, target := c[0], c[1]
		counts := SegmentCounts(n, target)
		require.Len(t, counts, n-1, "n=%d", n)

		sum := 0
		for _, k := range counts {
			assert.GreaterOrEqual(t, k, 0)
			sum += k
		}
		assert.Equal(t, target-n, sum, "n=%d target=%d", n, target)
	}
}

func TestOriginalIndices(t *testing.T) {
	assert.Equal(t, []int{0, 4, 8, 11}, OriginalIndices(12, 4))
	assert.Equal(t, []int{0}, OriginalIndices(100, 1))
	assert.Equal(t, []int{0, 1, 2}, OriginalIndices(3, 3))
	assert.Nil(t, OriginalIndices(10, 0))

	for _, n := range []int{2, 5, 33, 60, 99} {
		in := line(n)
		out, err := Pad(in, 100, config.PaddingLinearInterpolation)
		require.NoError(t, err)

		idx := OriginalIndices(len(out), n)
		require.Len(t, idx, n)
		for i, j := range idx {
			assert.Equal(t, in[i], out[j], "n=%d ponto %d", n, i)
		}
	}
}

func TestPadRepeatLast(t *testing.T) {
	in := line(5)
	out, err := Pad(in, 8, config.PaddingRepeatLast)
	require.NoError(t, err)
	require.Len(t, out, 8)

	assert.Equal(t, in, out[:5])
	for i := 5; i < 8; i++ {
		assert.Equal(t, in[4].X, out[i].X)
		assert.Equal(t, out[i-1].T+1, out[i].T)
	}
}

func TestPadErrors(t *testing.T) {
	_, err := Pad(nil, 100, config.PaddingRepeatLast)
	assert.True(t, errors.Is(err, ErrEmptyStroke))

	_, err = Pad(line(3), 100, "spline")
	assert.True(t, errors.Is(err, ErrUnknownPaddingStrategy))
}
