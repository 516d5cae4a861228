package scenario

import (
	"errors"
	"math"

	"github.com/montelab/montelab/dist"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
	"github.com/montelab/montelab/stats"
)

func init() {
	register(&Scenario{
		Name:        "sequential",
		Description: "draws from Poisson(lambda) needed before the running mean settles within a tolerance of lambda",
		Unit:        "draws needed",
		Params: []Param{
			{Name: "lambda", Usage: "Poisson rate", Default: 5},
			{Name: "tol", Usage: "absolute tolerance on the running mean", Default: 0.1},
			{Name: "warmup", Usage: "draws before the tolerance is checked", Default: 10},
			{Name: "maxdraws", Usage: "give up after this many draws", Default: 1000000},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			lambda := v.Get("lambda")
			tol := v.Get("tol")
			warmup := int(v.Get("warmup"))
			maxDraws := int(v.Get("maxdraws"))
			if tol <= 0 {
				return nil, errors.New("sequential: tolerance must be positive")
			}
			if maxDraws < 1 {
				return nil, errors.New("sequential: maxdraws must be positive")
			}
			return func(src *rng.Source) (float64, error) {
				sampler, err := dist.Poisson(src, lambda)
				if err != nil {
					return 0, err
				}
				var running stats.Statistic
				for i := 1; i <= maxDraws; i++ {
					running.Push(sampler.Rand())
					if i >= warmup && math.Abs(running.Mean()-lambda) < tol {
						return float64(i), nil
					}
				}
				return float64(maxDraws), nil
			}, nil
		},
	})
}
