package shell

import (
	"errors"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
)

const histWidth = 40

func (sc *ShellController) showHistogram(args []string) error {
	if sc.lastResult == nil {
		return errors.New("no run yet; use `run <scenario>` first")
	}
	samples := sc.lastResult.Samples()
	if len(samples) == 0 {
		return errors.New("last run retained no samples")
	}

	bins := 15
	if len(args) > 0 {
		var err error
		bins, err = strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		if bins < 1 {
			return errors.New("need at least one bin")
		}
	}

	hist := histogram.Hist(bins, samples)
	return histogram.Fprint(sc.l.Stderr(), hist, histogram.Linear(histWidth))
}
