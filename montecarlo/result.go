package montecarlo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/montelab/montelab/stats"
)

var ErrNoSamples = errors.New("samples were not retained; call SetKeepSamples(true) before running")

// Result summarizes a completed run.
type Result struct {
	Iterations    uint64
	Mean          float64
	Stdev         float64
	StandardError float64
	Min           float64
	Max           float64
	// Confidence is the level, in percent, that ConfidenceInterval uses.
	Confidence float64
	Elapsed    time.Duration

	samples []float64
}

func newResult(workers []*workerState, confidence float64, elapsed time.Duration) *Result {
	var merged stats.Statistic
	var samples []float64
	for _, w := range workers {
		merged.Combine(&w.stat)
		samples = append(samples, w.samples...)
	}
	return &Result{
		Iterations:    uint64(merged.Iterations()),
		Mean:          merged.Mean(),
		Stdev:         merged.Stdev(),
		StandardError: merged.StandardError(),
		Min:           merged.Min(),
		Max:           merged.Max(),
		Confidence:    confidence,
		Elapsed:       elapsed,
		samples:       samples,
	}
}

// ConfidenceInterval returns the interval around the mean at the result's
// confidence level, assuming approximate normality of the sample mean.
func (r *Result) ConfidenceInterval() (float64, float64) {
	margin := stats.ZVal(r.Confidence) * r.StandardError
	return r.Mean - margin, r.Mean + margin
}

// Percentile returns the p-th percentile (0 to 100) of the retained
// observations.
func (r *Result) Percentile(p float64) (float64, error) {
	if len(r.samples) == 0 {
		return 0, ErrNoSamples
	}
	return stats.Percentile(r.samples, p), nil
}

// Samples returns the retained observations, in worker order. Callers must
// not mutate the returned slice.
func (r *Result) Samples() []float64 {
	return r.samples
}

func (r *Result) TrialsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Iterations) / r.Elapsed.Seconds()
}

func (r *Result) String() string {
	var ss strings.Builder
	lo, hi := r.ConfidenceInterval()
	fmt.Fprintf(&ss, "mean %.6g ± %.3g (%.0f%% CI [%.6g, %.6g])",
		r.Mean, stats.ZVal(r.Confidence)*r.StandardError, r.Confidence, lo, hi)
	fmt.Fprintf(&ss, ", stdev %.6g, min %.6g, max %.6g", r.Stdev, r.Min, r.Max)
	fmt.Fprintf(&ss, "; %d iterations in %v", r.Iterations, r.Elapsed.Round(time.Millisecond))
	return ss.String()
}
