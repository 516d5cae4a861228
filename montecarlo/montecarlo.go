// Package montecarlo implements the repeated-trial estimation engine: run a
// trial function many times across workers, accumulate its outputs, and
// read off a mean with a confidence interval (or a probability, for
// boolean events).
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/montelab/montelab/rng"
	"github.com/montelab/montelab/stats"
)

var ErrNilTrial = errors.New("trial function is required")

// Trial runs one simulated experiment and reports a single observation.
// All randomness must come from the provided source.
type Trial func(src *rng.Source) (float64, error)

// Event is a Trial with a boolean outcome, for probability estimation.
type Event func(src *rng.Source) (bool, error)

// LogIteration is a struct meant for serializing to a log-file, for debug
// and other purposes.
type LogIteration struct {
	Iteration uint64  `json:"iteration" yaml:"iteration"`
	Worker    int     `json:"worker" yaml:"worker"`
	Value     float64 `json:"value" yaml:"value"`
}

type workerState struct {
	sync.Mutex
	src     *rng.Source
	stat    stats.Statistic
	samples []float64
}

func (w *workerState) push(val float64, keep bool) {
	w.Lock()
	w.stat.Push(val)
	if keep {
		w.samples = append(w.samples, val)
	}
	w.Unlock()
}

// Runner executes trials. Configure it with the Set methods before calling
// Run; a Runner must not be reconfigured while a run is in progress.
type Runner struct {
	src         *rng.Source
	iterations  uint64
	threads     int
	confidence  float64
	keepSamples bool
	logStream   io.Writer

	autostopper *autostopper

	running        bool
	iterationCount atomic.Uint64
}

// NewRunner creates a runner drawing from src, with 10000 iterations,
// one worker per CPU and a 95% confidence level.
func NewRunner(src *rng.Source) *Runner {
	return &Runner{
		src:         src,
		iterations:  10000,
		threads:     max(1, runtime.NumCPU()),
		confidence:  95,
		autostopper: newAutostopper(),
	}
}

func (r *Runner) SetIterations(n uint64) {
	r.iterations = n
}

func (r *Runner) SetThreads(threads int) {
	r.threads = max(1, threads)
}

func (r *Runner) Threads() int {
	return r.threads
}

// SetConfidence sets the confidence level, as a percentage from 0 to 100.
func (r *Runner) SetConfidence(pct float64) {
	r.confidence = pct
}

// SetKeepSamples controls whether every observation is retained. Retention
// is required for percentile queries and histograms.
func (r *Runner) SetKeepSamples(b bool) {
	r.keepSamples = b
}

func (r *Runner) SetLogStream(l io.Writer) {
	r.logStream = l
}

func (r *Runner) SetStoppingCondition(sc StoppingCondition) {
	r.autostopper.stoppingCondition = sc
}

// SetMarginOfError sets the confidence-interval half-width at which a
// StopAtMarginOfError run ends early.
func (r *Runner) SetMarginOfError(tol float64) {
	r.autostopper.marginOfError = tol
}

func (r *Runner) SetStopCheckInterval(i uint64) {
	r.autostopper.stopConditionCheckInterval = i
}

func (r *Runner) IsRunning() bool {
	return r.running
}

func (r *Runner) Iterations() uint64 {
	return r.iterationCount.Load()
}

// Run executes the trial repeatedly and blocks until the iteration budget
// is spent, the stopping condition fires, the context is canceled, or the
// trial errors. Worker w draws from the derived stream "worker-w", so for
// a fixed seed, worker count and iteration count the observations are
// identical run-to-run.
func (r *Runner) Run(ctx context.Context, trial Trial) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if trial == nil {
		return nil, ErrNilTrial
	}

	r.running = true
	defer func() {
		r.running = false
		logger.Info().Uint64("iterationCt", r.iterationCount.Load()).Msg("run-ended")
	}()

	r.iterationCount.Store(0)
	r.autostopper.reset(r.confidence)

	logChan := make(chan []byte)
	done := make(chan bool)
	writer := errgroup.Group{}

	if r.logStream != nil {
		writer.Go(func() error {
			for {
				select {
				case bytes := <-logChan:
					r.logStream.Write(bytes)
				case <-done:
					return nil
				}
			}
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tstart := time.Now()
	workers := make([]*workerState, r.threads)
	for t := 0; t < r.threads; t++ {
		workers[t] = &workerState{src: r.src.Stream(fmt.Sprintf("worker-%d", t))}
	}

	g := errgroup.Group{}
	for t := 0; t < r.threads; t++ {
		quota := r.iterations / uint64(r.threads)
		if uint64(t) < r.iterations%uint64(r.threads) {
			quota++
		}
		ws := workers[t]
		g.Go(func() error {
			logger.Debug().Int("worker", t).Uint64("quota", quota).Msg("worker starting")
			for i := uint64(0); i < quota; i++ {
				numIters := r.iterationCount.Add(1)
				val, err := trial(ws.src)
				if err != nil {
					logger.Err(err).Msg("error running trial; canceling")
					cancel()
					return err
				}
				ws.push(val, r.keepSamples)

				if r.logStream != nil {
					out, err := yaml.Marshal([]LogIteration{{
						Iteration: numIters, Worker: t, Value: val,
					}})
					if err != nil {
						logger.Error().Err(err).Msg("marshalling log")
						return err
					}
					logChan <- out
				}

				if r.autostopper.stoppingCondition != StopNone &&
					numIters%r.autostopper.stopConditionCheckInterval == 0 {
					logger.Debug().Uint64("numIters", numIters).Msg("checking-stopping-condition")
					if r.autostopper.shouldStop(workers) {
						logger.Info().Uint64("numIters", numIters).Msg("reached stopping condition")
						cancel()
					}
				}

				select {
				case <-ctx.Done():
					logger.Debug().Int("worker", t).Msg("worker got cancellation")
					return nil
				default:
				}
			}
			return nil
		})
	}

	err := g.Wait()
	elapsed := time.Since(tstart)

	if r.logStream != nil {
		close(done)
		writer.Wait()
	}

	if err != nil {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !r.autostopper.stopped() {
		return nil, ctxErr
	}

	res := newResult(workers, r.confidence, elapsed)
	logger.Info().
		Uint64("iterations", res.Iterations).
		Float64("trialsPerSec", res.TrialsPerSecond()).
		Msg("run-complete")
	return res, nil
}

// EstimateProbability runs a boolean event and reports the fraction of
// trials in which it occurred. The Result mean is the probability estimate.
func (r *Runner) EstimateProbability(ctx context.Context, event Event) (*Result, error) {
	if event == nil {
		return nil, ErrNilTrial
	}
	return r.Run(ctx, func(src *rng.Source) (float64, error) {
		ok, err := event(src)
		if err != nil {
			return 0, err
		}
		if ok {
			return 1, nil
		}
		return 0, nil
	})
}
