package validator

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature_go/internal/config"
	"signature_go/internal/models"
	"signature_go/internal/pipeline"
)

func testConfig() *config.Config {
	cfg, err := config.LoadFile("arquivo-inexistente.yaml")
	if err != nil {
		panic(err)
	}
	return cfg
}

func stroke(n int, stepMs int64) []models.StrokePoint {
	points := make([]models.StrokePoint, n)
	for i := range points {
		s := float64(i) / float64(n-1)
		points[i] = models.StrokePoint{
			X: 100 + 300*s + 60*math.Sin(2*math.Pi*3*s),
			Y: 200 + 80*math.Sin(2*math.Pi*2*s),
			T: int64(i) * stepMs,
			P: 0.5 + 0.3*math.Sin(2*math.Pi*s),
		}
	}
	return points
}

func TestValidateAcceptsWithProvidedFeatures(t *testing.T) {
	svc := NewService(testConfig())

	req := models.BiometricRequest{
		NormalizedStroke: stroke(300, 10),
		RealLength:       300,
		Features:         &models.StrokeFeatures{VelocityMean: 2500, TotalDistance: 900},
	}

	resp, err := svc.Validate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.IsValid)
	assert.InDelta(t, 0.90, resp.Confidence, 1e-9)
	assert.Equal(t, MockUserID, resp.UserID)
	require.NotNil(t, resp.Details)
	assert.Equal(t, MockMatchedUser, resp.Details.MatchedUser)
	assert.Equal(t, "lstm_v2.1_mock", resp.Details.ModelVersion)
	assert.Equal(t, 299, resp.Details.NumPointsProcessed)
	assert.Equal(t, 400, resp.Details.Preprocessing.AfterPreprocessing)
	assert.Equal(t, 101, resp.Details.Preprocessing.PaddedPoints)
	assert.Contains(t, resp.Message, "90%")

	stats := svc.Stats()
	assert.Equal(t, int64(1), stats.Validated)
	assert.Equal(t, int64(1), stats.Accepted)
}

func TestValidateComputesFeaturesWhenMissing(t *testing.T) {
	svc := NewService(testConfig())

	// ~1000 px em 3 s fica abaixo de 0.5 px/ms
	req := models.BiometricRequest{NormalizedStroke: stroke(300, 10), RealLength: 300}

	resp, err := svc.Validate(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assert.Empty(t, resp.UserID)
	assert.Empty(t, resp.Details.MatchedUser)
	assert.Equal(t, int64(1), svc.Stats().Rejected)
}

func TestValidateRejectsLengthOutsideLimits(t *testing.T) {
	svc := NewService(testConfig())

	_, err := svc.Validate(context.Background(), models.BiometricRequest{
		NormalizedStroke: stroke(50, 10),
		RealLength:       50,
	})
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = svc.Validate(context.Background(), models.BiometricRequest{
		NormalizedStroke: stroke(1300, 10),
		RealLength:       1300,
	})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	svc := NewService(testConfig())

	_, err := svc.Preprocess(context.Background(), models.BiometricRequest{
		NormalizedStroke: stroke(200, 10),
		RealLength:       200,
		PaddingStrategy:  "spline",
	})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestValidatePropagatesPipelineErrors(t *testing.T) {
	svc := NewService(testConfig())

	_, err := svc.Validate(context.Background(), models.BiometricRequest{
		NormalizedStroke: stroke(200, 10),
		RealLength:       500,
	})
	require.Error(t, err)
	assert.True(t, pipeline.IsInputError(err))
}

func TestPreprocessWaitsForSlot(t *testing.T) {
	cfg := testConfig()
	cfg.Validator.MaxConcurrent = 1
	svc := NewService(cfg)

	require.NoError(t, svc.sem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Preprocess(ctx, models.BiometricRequest{
		NormalizedStroke: stroke(200, 10),
		RealLength:       200,
	})
	assert.True(t, errors.Is(err, ErrBusy))

	svc.sem.Release(1)
	res, err := svc.Preprocess(context.Background(), models.BiometricRequest{
		NormalizedStroke: stroke(200, 10),
		RealLength:       200,
	})
	require.NoError(t, err)
	assert.Len(t, res.Features, 400)
}
