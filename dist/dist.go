// Package dist wraps the standard distribution families behind validated
// constructors. Invalid parameters are reported as errors up front instead
// of panicking mid-simulation.
package dist

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/montelab/montelab/rng"
)

var (
	ErrNonPositiveScale = errors.New("scale parameter must be positive")
	ErrNonPositiveRate  = errors.New("rate parameter must be positive")
	ErrBadProbability   = errors.New("probability must be between 0 and 1")
	ErrBadInterval      = errors.New("interval min must be less than max")
	ErrLengthMismatch   = errors.New("values and probabilities must have the same length")
	ErrBadWeight        = errors.New("probabilities must be non-negative")
	ErrNotNormalized    = errors.New("probabilities must sum to 1")
)

// Sampler draws one variate per call.
type Sampler interface {
	Rand() float64
}

// Normal returns a Normal(mu, sigma) sampler.
func Normal(src *rng.Source, mu, sigma float64) (Sampler, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("normal: sigma %v: %w", sigma, ErrNonPositiveScale)
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}, nil
}

// Uniform returns a Uniform(min, max) sampler.
func Uniform(src *rng.Source, min, max float64) (Sampler, error) {
	if min >= max {
		return nil, fmt.Errorf("uniform: [%v, %v): %w", min, max, ErrBadInterval)
	}
	return distuv.Uniform{Min: min, Max: max, Src: src}, nil
}

// Poisson returns a Poisson(lambda) sampler.
func Poisson(src *rng.Source, lambda float64) (Sampler, error) {
	if lambda <= 0 {
		return nil, fmt.Errorf("poisson: lambda %v: %w", lambda, ErrNonPositiveRate)
	}
	return distuv.Poisson{Lambda: lambda, Src: src}, nil
}

// Binomial returns a Binomial(n, p) sampler.
func Binomial(src *rng.Source, n int, p float64) (Sampler, error) {
	if n < 0 {
		return nil, fmt.Errorf("binomial: n %d must be non-negative", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("binomial: p %v: %w", p, ErrBadProbability)
	}
	return distuv.Binomial{N: float64(n), P: p, Src: src}, nil
}

// Bernoulli returns a Bernoulli(p) sampler.
func Bernoulli(src *rng.Source, p float64) (Sampler, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("bernoulli: p %v: %w", p, ErrBadProbability)
	}
	return distuv.Bernoulli{P: p, Src: src}, nil
}

// Exponential returns an Exponential(rate) sampler.
func Exponential(src *rng.Source, rate float64) (Sampler, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("exponential: rate %v: %w", rate, ErrNonPositiveRate)
	}
	return distuv.Exponential{Rate: rate, Src: src}, nil
}

// SampleN draws n variates from the sampler.
func SampleN(s Sampler, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Rand()
	}
	return out
}

const normalizationTolerance = 1e-9

// Discrete samples from an explicit list of values with explicit
// probabilities.
type Discrete struct {
	src    *rng.Source
	values []float64
	probs  []float64
}

// NewDiscrete validates the value/probability lists. Probabilities must be
// non-negative and sum to 1 within a small tolerance; they are normalized
// exactly on construction.
func NewDiscrete(src *rng.Source, values, probs []float64) (*Discrete, error) {
	if len(values) != len(probs) {
		return nil, fmt.Errorf("discrete: %d values, %d probabilities: %w",
			len(values), len(probs), ErrLengthMismatch)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("discrete: %w", rng.ErrEmptyWeights)
	}
	total := 0.0
	for _, p := range probs {
		if p < 0 {
			return nil, fmt.Errorf("discrete: probability %v: %w", p, ErrBadWeight)
		}
		total += p
	}
	if math.Abs(total-1) > normalizationTolerance {
		return nil, fmt.Errorf("discrete: probabilities sum to %v: %w", total, ErrNotNormalized)
	}
	normalized := make([]float64, len(probs))
	for i, p := range probs {
		normalized[i] = p / total
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Discrete{src: src, values: vals, probs: normalized}, nil
}

func (d *Discrete) Rand() float64 {
	idx, err := d.src.WeightedIndex(d.probs)
	if err != nil {
		// Construction guarantees a positive total weight.
		panic(err)
	}
	return d.values[idx]
}

// Mean returns the exact expectation of the distribution.
func (d *Discrete) Mean() float64 {
	m := 0.0
	for i, v := range d.values {
		m += v * d.probs[i]
	}
	return m
}
