package scenario

import (
	"errors"

	"github.com/montelab/montelab/dist"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "portfolio",
		Description: "final wealth after compounding normally distributed annual returns",
		Unit:        "final wealth ($)",
		Params: []Param{
			{Name: "wealth", Usage: "starting wealth ($)", Default: 10000},
			{Name: "years", Usage: "investment horizon (years)", Default: 30},
			{Name: "mu", Usage: "mean annual return", Default: 0.07},
			{Name: "sigma", Usage: "stdev of annual return", Default: 0.15},
			{Name: "contrib", Usage: "contribution added each year ($)", Default: 0},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			years := int(v.Get("years"))
			if years < 1 {
				return nil, errors.New("portfolio: horizon must be at least one year")
			}
			w0 := v.Get("wealth")
			mu := v.Get("mu")
			sigma := v.Get("sigma")
			contrib := v.Get("contrib")
			return func(src *rng.Source) (float64, error) {
				returns, err := dist.Normal(src, mu, sigma)
				if err != nil {
					return 0, err
				}
				wealth := w0
				for y := 0; y < years; y++ {
					wealth = wealth*(1+returns.Rand()) + contrib
					if wealth <= 0 {
						// Ruin; can't recover from a nonpositive balance.
						return 0, nil
					}
				}
				return wealth, nil
			}, nil
		},
	})
}
