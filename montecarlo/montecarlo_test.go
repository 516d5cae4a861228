package montecarlo

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/montelab/montelab/rng"
)

func uniformTrial(src *rng.Source) (float64, error) {
	return src.Float64(), nil
}

func TestRunFixedIterations(t *testing.T) {
	is := is.New(t)
	r := NewRunner(rng.NewSource(42))
	r.SetIterations(50000)
	r.SetThreads(4)

	res, err := r.Run(context.Background(), uniformTrial)
	is.NoErr(err)
	is.Equal(res.Iterations, uint64(50000))
	is.True(math.Abs(res.Mean-0.5) < 0.01)
	is.True(res.Min >= 0)
	is.True(res.Max < 1)
}

func TestRunDeterminism(t *testing.T) {
	is := is.New(t)
	run := func() *Result {
		r := NewRunner(rng.NewSource(1234))
		r.SetIterations(10000)
		r.SetThreads(3)
		res, err := r.Run(context.Background(), uniformTrial)
		is.NoErr(err)
		return res
	}
	a := run()
	b := run()
	is.Equal(a.Mean, b.Mean)
	is.Equal(a.Stdev, b.Stdev)
	is.Equal(a.Min, b.Min)
	is.Equal(a.Max, b.Max)
}

func TestEstimateProbabilityPi(t *testing.T) {
	is := is.New(t)
	r := NewRunner(rng.NewSource(7))
	r.SetIterations(200000)

	res, err := r.EstimateProbability(context.Background(), func(src *rng.Source) (bool, error) {
		x := src.Float64()
		y := src.Float64()
		return x*x+y*y < 1, nil
	})
	is.NoErr(err)
	// 4 * P(inside unit quarter circle) approaches pi.
	is.True(math.Abs(4*res.Mean-math.Pi) < 0.02)
}

func TestStopAtMarginOfError(t *testing.T) {
	is := is.New(t)
	r := NewRunner(rng.NewSource(9))
	r.SetIterations(1_000_000)
	r.SetThreads(2)
	r.SetStoppingCondition(StopAtMarginOfError)
	r.SetMarginOfError(0.05)

	// Low-variance trial: the margin is reached almost immediately.
	res, err := r.Run(context.Background(), func(src *rng.Source) (float64, error) {
		return 10 + 0.1*src.Float64(), nil
	})
	is.NoErr(err)
	is.True(res.Iterations < 1_000_000)
	is.True(math.Abs(res.Mean-10.05) < 0.05)
}

func TestTrialError(t *testing.T) {
	is := is.New(t)
	boom := errors.New("boom")
	r := NewRunner(rng.NewSource(1))
	r.SetIterations(1000)

	_, err := r.Run(context.Background(), func(src *rng.Source) (float64, error) {
		return 0, boom
	})
	is.True(errors.Is(err, boom))

	_, err = r.Run(context.Background(), nil)
	is.Equal(err, ErrNilTrial)
}

func TestContextCancellation(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(rng.NewSource(1))
	r.SetIterations(1_000_000)
	_, err := r.Run(ctx, uniformTrial)
	is.Equal(err, context.Canceled)
}

func TestPercentileNeedsRetainedSamples(t *testing.T) {
	is := is.New(t)
	r := NewRunner(rng.NewSource(5))
	r.SetIterations(5000)

	res, err := r.Run(context.Background(), uniformTrial)
	is.NoErr(err)
	_, err = res.Percentile(50)
	is.Equal(err, ErrNoSamples)

	r.SetKeepSamples(true)
	res, err = r.Run(context.Background(), uniformTrial)
	is.NoErr(err)
	is.Equal(len(res.Samples()), 5000)
	median, err := res.Percentile(50)
	is.NoErr(err)
	is.True(math.Abs(median-0.5) < 0.05)
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	r := NewRunner(rng.NewSource(2))
	r.SetIterations(20)
	r.SetThreads(1)
	r.SetLogStream(&buf)

	_, err := r.Run(context.Background(), uniformTrial)
	is.NoErr(err)

	var iters []LogIteration
	err = yaml.Unmarshal(buf.Bytes(), &iters)
	is.NoErr(err)
	is.Equal(len(iters), 20)
	is.Equal(iters[0].Worker, 0)
}

func TestConfidenceIntervalBracketsMean(t *testing.T) {
	is := is.New(t)
	r := NewRunner(rng.NewSource(11))
	r.SetIterations(20000)
	r.SetConfidence(99)

	res, err := r.Run(context.Background(), uniformTrial)
	is.NoErr(err)
	lo, hi := res.ConfidenceInterval()
	is.True(lo < res.Mean)
	is.True(hi > res.Mean)
	is.True(lo < 0.5 && 0.5 < hi)
}
