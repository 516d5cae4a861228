package scenario

import (
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "pi",
		Description: "estimate pi from the fraction of uniform points inside the unit circle",
		Unit:        "pi estimate",
		Build: func(v Values) (montecarlo.Trial, error) {
			return func(src *rng.Source) (float64, error) {
				x := src.Float64()
				y := src.Float64()
				if x*x+y*y < 1 {
					return 4, nil
				}
				return 0, nil
			}, nil
		},
	})
}
