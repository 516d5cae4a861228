// Package resample implements nonparametric resampling: bootstrap,
// jackknife and permutation tests.
package resample

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/montelab/montelab/rng"
	mstats "github.com/montelab/montelab/stats"
)

var (
	ErrEmptyData     = errors.New("data must be non-empty")
	ErrTooFewReps    = errors.New("replicate count must be at least 1")
	ErrTooFewPoints  = errors.New("jackknife needs at least 2 observations")
	ErrBadConfidence = errors.New("confidence must be between 0 and 100")
)

// Statistic maps a sample to a scalar.
type Statistic func([]float64) float64

// Mean is the sample mean statistic.
func Mean(data []float64) float64 {
	return stat.Mean(data, nil)
}

// Median is the sample median statistic.
func Median(data []float64) float64 {
	c := make([]float64, len(data))
	copy(c, data)
	sort.Float64s(c)
	return stat.Quantile(0.5, stat.LinInterp, c, nil)
}

// Distribution holds the replicate distribution of a resampled statistic.
type Distribution struct {
	// Observed is the statistic computed on the original data.
	Observed   float64
	replicates []float64
}

// Replicates returns the sorted replicate values.
func (d *Distribution) Replicates() []float64 {
	return d.replicates
}

// Mean returns the mean of the replicate distribution.
func (d *Distribution) Mean() float64 {
	return stat.Mean(d.replicates, nil)
}

// StandardError returns the standard deviation of the replicate
// distribution, which estimates the standard error of the statistic.
func (d *Distribution) StandardError() float64 {
	return stat.StdDev(d.replicates, nil)
}

// Bias estimates the statistic's bias: mean of replicates minus the
// observed value.
func (d *Distribution) Bias() float64 {
	return d.Mean() - d.Observed
}

// PercentileInterval returns the percentile confidence interval at the
// given level (0 to 100).
func (d *Distribution) PercentileInterval(confidence float64) (float64, float64, error) {
	if confidence <= 0 || confidence >= 100 {
		return 0, 0, ErrBadConfidence
	}
	tail := (100 - confidence) / 2
	return mstats.Percentile(d.replicates, tail), mstats.Percentile(d.replicates, 100-tail), nil
}

// Bootstrap draws b resamples of the data with replacement and computes the
// statistic on each, spreading the work across workers. Replicate r is
// always drawn from the stream "replicate-r", so results depend only on the
// source seed and b.
func Bootstrap(ctx context.Context, src *rng.Source, data []float64, statistic Statistic, b int) (*Distribution, error) {
	logger := zerolog.Ctx(ctx)
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if b < 1 {
		return nil, ErrTooFewReps
	}

	replicates := make([]float64, b)
	threads := max(1, runtime.NumCPU())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for r := 0; r < b; r++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rsrc := src.Stream(fmt.Sprintf("replicate-%d", r))
			replicates[r] = statistic(rsrc.SampleWithReplacement(data, len(data)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Float64s(replicates)
	logger.Debug().Int("replicates", b).Int("n", len(data)).Msg("bootstrap-complete")

	return &Distribution{
		Observed:   statistic(data),
		replicates: replicates,
	}, nil
}

// JackknifeEstimate holds leave-one-out estimates for a statistic.
type JackknifeEstimate struct {
	// Observed is the statistic on the full sample.
	Observed float64
	// Bias is the jackknife bias estimate, (n-1) * (mean of leave-one-out
	// values - observed).
	Bias float64
	// StandardError is the jackknife standard error.
	StandardError float64
}

// BiasCorrected returns the observed statistic minus the bias estimate.
func (j *JackknifeEstimate) BiasCorrected() float64 {
	return j.Observed - j.Bias
}

// Jackknife systematically recomputes the statistic leaving out one
// observation at a time.
func Jackknife(data []float64, statistic Statistic) (*JackknifeEstimate, error) {
	n := len(data)
	if n < 2 {
		return nil, ErrTooFewPoints
	}

	loo := make([]float64, n)
	scratch := make([]float64, n-1)
	for i := range data {
		copy(scratch, data[:i])
		copy(scratch[i:], data[i+1:])
		loo[i] = statistic(scratch)
	}

	looMean := stat.Mean(loo, nil)
	observed := statistic(data)

	ssd := 0.0
	for _, v := range loo {
		d := v - looMean
		ssd += d * d
	}

	return &JackknifeEstimate{
		Observed:      observed,
		Bias:          float64(n-1) * (looMean - observed),
		StandardError: math.Sqrt(float64(n-1) / float64(n) * ssd),
	}, nil
}
