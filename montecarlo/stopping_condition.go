package montecarlo

import (
	"sync/atomic"

	"github.com/montelab/montelab/stats"
)

// StoppingCondition decides whether a run can end before its iteration
// budget is spent.
type StoppingCondition int

const (
	// StopNone runs the full iteration budget.
	StopNone StoppingCondition = iota
	// StopAtMarginOfError ends the run once the confidence-interval
	// half-width around the running mean falls below the configured
	// tolerance.
	StopAtMarginOfError
)

const (
	defaultStopCheckInterval = 128
	// Don't trust the standard error until we have a few observations
	// per worker.
	minIterationsBeforeStop = 64
)

// use stats to figure out when to stop a run early.
type autostopper struct {
	stoppingCondition          StoppingCondition
	marginOfError              float64
	stopConditionCheckInterval uint64

	zval        float64
	stopReached atomic.Bool
}

func newAutostopper() *autostopper {
	return &autostopper{
		stoppingCondition:          StopNone,
		marginOfError:              0.01,
		stopConditionCheckInterval: defaultStopCheckInterval,
	}
}

func (a *autostopper) reset(confidence float64) {
	a.zval = stats.ZVal(confidence)
	a.stopReached.Store(false)
}

func (a *autostopper) stopped() bool {
	return a.stopReached.Load()
}

// shouldStop runs while workers are pushing observations, so it snapshots
// each worker's accumulator under its lock before merging.
func (a *autostopper) shouldStop(workers []*workerState) bool {
	var merged stats.Statistic
	for _, w := range workers {
		w.Lock()
		snapshot := w.stat
		w.Unlock()
		merged.Combine(&snapshot)
	}
	if merged.Iterations() < minIterationsBeforeStop {
		return false
	}
	if a.zval*merged.StandardError() > a.marginOfError {
		return false
	}
	a.stopReached.Store(true)
	return true
}
