package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestCheckVarianceSkippedWhenUnconfigured(t *testing.T) {
	res, err := CheckVariance(123.4, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.InRange)

	res, err = CheckVariance(123.4, f(100), nil)
	require.NoError(t, err)
	assert.True(t, res.InRange)

	res, err = CheckVariance(123.4, nil, f(5))
	require.NoError(t, err)
	assert.True(t, res.InRange)
}

func TestCheckVarianceInclusiveBounds(t *testing.T) {
	// expected=10, tolerance=5% -> [9.5, 10.5]
	for _, measured := range []float64{9.5, 10.5, 10.0} {
		res, err := CheckVariance(measured, f(10), f(5))
		require.NoError(t, err)
		assert.True(t, res.InRange, "measured=%v", measured)
		assert.Zero(t, res.DeviationPercent)
	}
}

func TestCheckVarianceOutOfRange(t *testing.T) {
	res, err := CheckVariance(9.49, f(10), f(5))
	require.NoError(t, err)
	assert.False(t, res.InRange)
	assert.False(t, res.IsOver)
	assert.InDelta(t, 5.1, res.DeviationPercent, 1e-9)

	res, err = CheckVariance(10.51, f(10), f(5))
	require.NoError(t, err)
	assert.False(t, res.InRange)
	assert.True(t, res.IsOver)
	assert.InDelta(t, 5.1, res.DeviationPercent, 1e-9)
}

func TestCheckVarianceZeroTolerance(t *testing.T) {
	res, err := CheckVariance(10, f(10), f(0))
	require.NoError(t, err)
	assert.True(t, res.InRange)

	res, err = CheckVariance(10.01, f(10), f(0))
	require.NoError(t, err)
	assert.False(t, res.InRange)
	assert.True(t, res.IsOver)
}

func TestCheckVarianceNegativeTolerance(t *testing.T) {
	_, err := CheckVariance(10, f(10), f(-1))
	assert.ErrorIs(t, err, ErrInvalidTolerance)
}
