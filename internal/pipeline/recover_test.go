package pipeline

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature_go/internal/config"
	"signature_go/internal/ingestion"
)

func TestRecoverPrefix(t *testing.T) {
	points := signature(120, 10)

	out, err := Recover(points, 120)
	require.NoError(t, err)
	assert.Equal(t, points, out)

	out, err = Recover(points, 80)
	require.NoError(t, err)
	assert.Equal(t, points[:80], out)
}

func TestRecoverInconsistentRealLength(t *testing.T) {
	points := signature(100, 10)

	for _, realLength := range []int{0, -3, 101} {
		_, err := Recover(points, realLength)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInconsistentRealLength), "real_length=%d", realLength)
		assert.True(t, IsInputError(err))
	}
}

func TestRecoverRoundTrip(t *testing.T) {
	original := signature(60, 12)

	for _, strategy := range []string{config.PaddingLinearInterpolation, config.PaddingRepeatLast} {
		padded, err := ingestion.Pad(original, 100, strategy)
		require.NoError(t, err)
		require.Len(t, padded, 100)

		recovered, err := RecoverPadded(padded, len(original), strategy)
		require.NoError(t, err)
		assert.Equal(t, original, recovered, strategy)
	}
}

func TestRecoverPaddedWithoutStrategyUsesPrefix(t *testing.T) {
	original := signature(60, 12)
	padded, err := ingestion.Pad(original, 100, config.PaddingRepeatLast)
	require.NoError(t, err)

	recovered, err := RecoverPadded(padded, 60, "")
	require.NoError(t, err)
	assert.Equal(t, original, recovered)
}
