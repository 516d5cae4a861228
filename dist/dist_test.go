package dist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montelab/montelab/rng"
	"github.com/montelab/montelab/stats"
)

func TestConstructorValidation(t *testing.T) {
	src := rng.NewSource(1)

	_, err := Normal(src, 0, -1)
	assert.ErrorIs(t, err, ErrNonPositiveScale)

	_, err = Uniform(src, 5, 5)
	assert.ErrorIs(t, err, ErrBadInterval)

	_, err = Poisson(src, 0)
	assert.ErrorIs(t, err, ErrNonPositiveRate)

	_, err = Binomial(src, 10, 1.5)
	assert.ErrorIs(t, err, ErrBadProbability)

	_, err = Bernoulli(src, -0.1)
	assert.ErrorIs(t, err, ErrBadProbability)

	_, err = Exponential(src, 0)
	assert.ErrorIs(t, err, ErrNonPositiveRate)
}

func TestDiscreteValidation(t *testing.T) {
	src := rng.NewSource(1)

	_, err := NewDiscrete(src, []float64{1, 2, 3}, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewDiscrete(src, []float64{1, 2}, []float64{1.5, -0.5})
	assert.ErrorIs(t, err, ErrBadWeight)

	_, err = NewDiscrete(src, []float64{1, 2}, []float64{0.3, 0.3})
	assert.ErrorIs(t, err, ErrNotNormalized)

	_, err = NewDiscrete(src, nil, nil)
	assert.Error(t, err)
}

// The sample mean of N Poisson(lambda) draws approaches lambda as N grows.
func TestPoissonConvergence(t *testing.T) {
	src := rng.NewSource(99)
	p, err := Poisson(src, 4.5)
	require.NoError(t, err)

	var s stats.Statistic
	for _, v := range SampleN(p, 200000) {
		s.Push(v)
	}
	// lambda = 4.5, variance = 4.5, SE ~ 0.0047; allow 4 standard errors.
	assert.InDelta(t, 4.5, s.Mean(), 0.02)
}

func TestNormalMoments(t *testing.T) {
	src := rng.NewSource(123)
	n, err := Normal(src, 10, 2)
	require.NoError(t, err)

	var s stats.Statistic
	for _, v := range SampleN(n, 200000) {
		s.Push(v)
	}
	assert.InDelta(t, 10, s.Mean(), 0.03)
	assert.InDelta(t, 2, s.Stdev(), 0.03)
}

func TestDiscreteSampling(t *testing.T) {
	src := rng.NewSource(5)
	d, err := NewDiscrete(src, []float64{0, 10, 100}, []float64{0.7, 0.2, 0.1})
	require.NoError(t, err)

	assert.InDelta(t, 12, d.Mean(), 1e-12)

	var s stats.Statistic
	for i := 0; i < 100000; i++ {
		v := d.Rand()
		assert.Contains(t, []float64{0, 10, 100}, v)
		s.Push(v)
	}
	assert.InDelta(t, d.Mean(), s.Mean(), 0.5)
}

func TestDeterministicDraws(t *testing.T) {
	mk := func() []float64 {
		src := rng.NewSource(77)
		n, err := Normal(src, 0, 1)
		require.NoError(t, err)
		return SampleN(n, 25)
	}
	assert.Equal(t, mk(), mk())
}
