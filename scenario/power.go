package scenario

import (
	"context"
	"errors"

	"github.com/montelab/montelab/dist"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/resample"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "power",
		Description: "power of a two-sample study: fraction of simulated experiments a permutation test rejects",
		Unit:        "rejection probability (power)",
		Params: []Param{
			{Name: "n", Usage: "observations per group", Default: 30},
			{Name: "effect", Usage: "true difference between group means", Default: 0.5},
			{Name: "sd", Usage: "within-group stdev", Default: 1},
			{Name: "alpha", Usage: "significance level", Default: 0.05},
			{Name: "shuffles", Usage: "label shuffles per inner test", Default: 199},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			n := int(v.Get("n"))
			shuffles := int(v.Get("shuffles"))
			if n < 2 {
				return nil, errors.New("power: need at least two observations per group")
			}
			if shuffles < 1 {
				return nil, errors.New("power: need at least one shuffle")
			}
			effect := v.Get("effect")
			sd := v.Get("sd")
			alpha := v.Get("alpha")
			return func(src *rng.Source) (float64, error) {
				treated, err := dist.Normal(src, effect, sd)
				if err != nil {
					return 0, err
				}
				control, err := dist.Normal(src, 0, sd)
				if err != nil {
					return 0, err
				}
				groupA := dist.SampleN(treated, n)
				groupB := dist.SampleN(control, n)
				test, err := resample.PermutationTest(context.Background(),
					src.Fork(), groupA, groupB, resample.Mean, shuffles)
				if err != nil {
					return 0, err
				}
				if test.PValueTwoSided < alpha {
					return 1, nil
				}
				return 0, nil
			}, nil
		},
	})
}
