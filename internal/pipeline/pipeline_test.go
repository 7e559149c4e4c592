package pipeline

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"signature_go/internal/config"
	"signature_go/internal/ingestion"
)

func assertMaskInvariants(t *testing.T, res *Result, length int) {
	t.Helper()
	require.Len(t, res.Features, length)
	require.Len(t, res.Mask, length)

	valid := res.ValidPoints()
	assert.Equal(t, float64(valid), floats.Sum(res.Mask))
	for i, m := range res.Mask {
		if i < valid {
			assert.Equal(t, 1.0, m, "máscara[%d]", i)
		} else {
			assert.Equal(t, 0.0, m, "máscara[%d]", i)
			assert.Equal(t, Row{}, res.Features[i])
		}
	}
	require.NoError(t, CheckNormalization(res.Features[:valid]))
}

func TestPreprocessShortSignatureIsPadded(t *testing.T) {
	points := signature(300, 10)

	res, err := Preprocess(points, len(points), DefaultOptions())
	require.NoError(t, err)

	assertMaskInvariants(t, res, 400)
	assert.Equal(t, 299, res.Trace.ResampledLength)
	assert.Equal(t, 299, res.ValidPoints())
	assert.False(t, res.Trace.AntiAliased)
	assert.Equal(t, 300, res.Trace.RecoveredLength)
}

func TestPreprocessLongSignatureIsTruncated(t *testing.T) {
	points := signature(150, 40)

	res, err := Preprocess(points, len(points), DefaultOptions())
	require.NoError(t, err)

	assertMaskInvariants(t, res, 400)
	assert.Equal(t, 596, res.Trace.ResampledLength)
	assert.True(t, res.Trace.AntiAliased)
	assert.LessOrEqual(t, res.ValidPoints(), 400)
	assert.Equal(t, res.Trace.WindowEnd-res.Trace.WindowStart, res.ValidPoints())
	assert.GreaterOrEqual(t, res.Trace.WindowStart, res.Trace.WarmupEnd)
	assert.LessOrEqual(t, res.Trace.WindowEnd, res.Trace.LiftingStart)
}

func TestPreprocessDeterministic(t *testing.T) {
	points := signature(220, 15)

	a, err := Preprocess(points, len(points), DefaultOptions())
	require.NoError(t, err)
	b, err := Preprocess(points, len(points), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Features, b.Features)
	assert.Equal(t, a.Mask, b.Mask)
}

func TestPreprocessAfterIngestion(t *testing.T) {
	cfg := config.IngestionConfig{
		MinStrokePoints: 100,
		MaxStrokePoints: 1200,
		PaddingStrategy: config.PaddingLinearInterpolation,
	}

	long, err := ingestion.Normalize(signature(180, 10), 1790, cfg)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.PaddingStrategy = long.Strategy
	res, err := Preprocess(long.Points, long.RealLength, opts)
	require.NoError(t, err)
	assert.Equal(t, 180, res.Trace.RecoveredLength)

	short, err := ingestion.Normalize(signature(60, 10), 590, cfg)
	require.NoError(t, err)
	require.Len(t, short.Points, 100)

	opts.PaddingStrategy = short.Strategy
	_, err = Preprocess(short.Points, short.RealLength, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSignatureTooShort))
	assert.True(t, IsInputError(err))
}

func TestPreprocessInconsistentRealLength(t *testing.T) {
	points := signature(120, 10)

	_, err := Preprocess(points, 121, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentRealLength))
}

func TestPreprocessDoesNotMutateInput(t *testing.T) {
	points := signature(140, 20)
	snapshot := append(points[:0:0], points...)

	_, err := Preprocess(points, len(points), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, snapshot, points)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.PipelineConfig{
		TargetFrequency:    50,
		TargetLength:       128,
		MinLength:          80,
		MinResampled:       64,
		MaxResampled:       512,
		SmoothWindow:       9,
		SmoothPolyOrder:    2,
		StrictAntiAliasing: true,
	})

	assert.Equal(t, 50.0, opts.TargetFrequency)
	assert.Equal(t, 128, opts.TargetLength)
	assert.Equal(t, 9, opts.SmoothWindow)
	assert.True(t, opts.StrictAntiAliasing)
	assert.Empty(t, opts.PaddingStrategy)
}
