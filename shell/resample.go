package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/montelab/montelab/resample"
	"github.com/montelab/montelab/scenario"
)

var datasets = map[string][]float64{
	"wrenches":   scenario.WrenchLengths,
	"donationsA": scenario.DonationsA,
	"donationsB": scenario.DonationsB,
}

func datasetNames() string {
	names := lo.Keys(datasets)
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func lookupDataset(name string) ([]float64, error) {
	data, ok := datasets[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q (have: %s)", name, datasetNames())
	}
	return data, nil
}

func parseReps(args []string, idx, def int) (int, error) {
	if len(args) <= idx {
		return def, nil
	}
	return strconv.Atoi(args[idx])
}

func (sc *ShellController) bootstrapCmd(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bootstrap <dataset> [replicates] (datasets: %s)", datasetNames())
	}
	data, err := lookupDataset(args[0])
	if err != nil {
		return err
	}
	reps, err := parseReps(args, 1, 5000)
	if err != nil {
		return err
	}

	d, err := resample.Bootstrap(context.Background(), sc.newSource(), data, resample.Mean, reps)
	if err != nil {
		return err
	}
	lo95, hi95, err := d.PercentileInterval(sc.confidence)
	if err != nil {
		return err
	}

	var ss strings.Builder
	fmt.Fprintf(&ss, "bootstrap of the mean, %s (n=%d, B=%d)\n", args[0], len(data), reps)
	fmt.Fprintf(&ss, "observed mean:  %.6g\n", d.Observed)
	fmt.Fprintf(&ss, "standard error: %.6g\n", d.StandardError())
	fmt.Fprintf(&ss, "bias estimate:  %.3g\n", d.Bias())
	fmt.Fprintf(&ss, "%.0f%% percentile CI: [%.6g, %.6g]", sc.confidence, lo95, hi95)
	sc.showMessage(ss.String())
	return nil
}

func (sc *ShellController) jackknifeCmd(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: jackknife <dataset> (datasets: %s)", datasetNames())
	}
	data, err := lookupDataset(args[0])
	if err != nil {
		return err
	}

	j, err := resample.Jackknife(data, resample.Mean)
	if err != nil {
		return err
	}

	var ss strings.Builder
	fmt.Fprintf(&ss, "jackknife of the mean, %s (n=%d)\n", args[0], len(data))
	fmt.Fprintf(&ss, "observed mean:  %.6g\n", j.Observed)
	fmt.Fprintf(&ss, "standard error: %.6g\n", j.StandardError)
	fmt.Fprintf(&ss, "bias estimate:  %.3g (corrected: %.6g)", j.Bias, j.BiasCorrected())
	sc.showMessage(ss.String())
	return nil
}

func (sc *ShellController) permCmd(args []string) error {
	shuffles, err := parseReps(args, 0, 10000)
	if err != nil {
		return err
	}

	res, err := resample.PermutationTest(context.Background(), sc.newSource(),
		scenario.DonationsB, scenario.DonationsA, resample.Mean, shuffles)
	if err != nil {
		return err
	}

	var ss strings.Builder
	fmt.Fprintf(&ss, "permutation test: mean(donationsB) - mean(donationsA), %d shuffles\n", shuffles)
	fmt.Fprintf(&ss, "observed difference: %.6g\n", res.ObservedDiff)
	fmt.Fprintf(&ss, "one-sided p-value:   %.4g\n", res.PValueOneSided)
	fmt.Fprintf(&ss, "two-sided p-value:   %.4g", res.PValueTwoSided)
	sc.showMessage(ss.String())
	return nil
}
