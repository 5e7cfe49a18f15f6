package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, mean([]float64{1, 2, 3}))
	assert.Equal(t, 5.0, mean([]float64{5}))
}

func TestStddev(t *testing.T) {
	// Known sample: {2, 4, 4, 4, 5, 5, 7, 9} has an unbiased stddev of
	// sqrt(32/7).
	got := stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, math.Sqrt(32.0/7.0), got, 1e-12)

	assert.Equal(t, 0.0, stddev([]float64{42}))
	assert.Equal(t, 0.0, stddev([]float64{3, 3, 3, 3}))
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, quantile(sorted, 0))
	assert.Equal(t, 5.0, quantile(sorted, 1))
	assert.Equal(t, 3.0, quantile(sorted, 0.5))
	assert.InDelta(t, 2.0, quantile(sorted, 0.25), 1e-12)
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}

func TestBootstrap_BoundsBracketTheMean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = 10 + rng.NormFloat64()
	}

	est := estimate(rng, xs, 2000, 0.95, mean)

	require.False(t, math.IsNaN(est.Lower))
	require.False(t, math.IsNaN(est.Upper))
	assert.LessOrEqual(t, est.Lower, est.Point)
	assert.GreaterOrEqual(t, est.Upper, est.Point)
	assert.Equal(t, 0.95, est.Confidence)

	// Resampled means can never escape the sample's own range.
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	assert.GreaterOrEqual(t, est.Lower, lo)
	assert.LessOrEqual(t, est.Upper, hi)
}

func TestBootstrap_TighterIntervalAtLowerConfidence(t *testing.T) {
	xs := make([]float64, 50)
	rng := rand.New(rand.NewSource(7))
	for i := range xs {
		xs[i] = rng.Float64()
	}

	wideLo, wideHi := bootstrap(rand.New(rand.NewSource(2)), xs, 2000, 0.99, mean)
	narrowLo, narrowHi := bootstrap(rand.New(rand.NewSource(2)), xs, 2000, 0.5, mean)

	assert.Less(t, narrowHi-narrowLo, wideHi-wideLo)
}

func TestKDE_DensityIntegratesToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	xs := make([]float64, 200)
	for i := range xs {
		xs[i] = rng.NormFloat64()
	}

	points, density := kde(xs)
	require.Len(t, points, kdePointCount)
	require.Len(t, density, kdePointCount)

	step := points[1] - points[0]
	var integral float64
	for _, d := range density {
		require.GreaterOrEqual(t, d, 0.0)
		integral += d * step
	}
	assert.InDelta(t, 1.0, integral, 0.05)
}

func TestKDE_DegenerateSample(t *testing.T) {
	points, density := kde([]float64{5, 5, 5, 5})
	require.NotEmpty(t, points)
	for _, d := range density {
		assert.False(t, math.IsNaN(d))
		assert.False(t, math.IsInf(d, 0))
	}
}

func TestKDE_Empty(t *testing.T) {
	points, density := kde(nil)
	assert.Nil(t, points)
	assert.Nil(t, density)
}
