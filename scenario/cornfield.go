package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/montelab/montelab/dist"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "cornfield",
		Description: "per-acre profit of a corn farm at a given planting density; crowding lowers per-plant yield",
		Unit:        "profit per acre ($)",
		Params: []Param{
			{Name: "density", Usage: "thousands of plants per acre", Default: 30},
			{Name: "baseyield", Usage: "bushels per thousand plants with no crowding", Default: 8},
			{Name: "crowding", Usage: "yield lost per thousand plants of density", Default: 0.12},
			{Name: "yieldsd", Usage: "stdev of per-thousand yield (bushels)", Default: 1.5},
			{Name: "price", Usage: "price per bushel ($)", Default: 4.5},
			{Name: "seedcost", Usage: "seed + planting cost per thousand plants ($)", Default: 12},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			return cornfieldTrial(v)
		},
	})
}

func cornfieldTrial(v Values) (montecarlo.Trial, error) {
	density := v.Get("density")
	if density <= 0 {
		return nil, errors.New("cornfield: density must be positive")
	}
	meanYield := v.Get("baseyield") - v.Get("crowding")*density
	yieldSD := v.Get("yieldsd")
	price := v.Get("price")
	seedCost := v.Get("seedcost")
	return func(src *rng.Source) (float64, error) {
		yield, err := dist.Normal(src, meanYield, yieldSD)
		if err != nil {
			return 0, err
		}
		// A plot never yields negative bushels.
		perThousand := max(0, yield.Rand())
		return price*perThousand*density - seedCost*density, nil
	}, nil
}

// DensityEstimate pairs a planting density with its estimated mean profit.
type DensityEstimate struct {
	Density float64
	Result  *montecarlo.Result
}

// OptimizeDensity estimates mean profit for every density in the grid and
// returns the estimates along with the index of the best one. The base
// values parameterize everything except density.
func OptimizeDensity(ctx context.Context, src *rng.Source, base Values, densities []float64, iterations uint64) ([]DensityEstimate, int, error) {
	if len(densities) == 0 {
		return nil, 0, errors.New("cornfield: density grid is empty")
	}
	s, err := Lookup("cornfield")
	if err != nil {
		return nil, 0, err
	}

	estimates := make([]DensityEstimate, 0, len(densities))
	best := 0
	for i, d := range densities {
		v := Values{}
		for _, p := range s.Params {
			v[p.Name] = p.Default
		}
		for k, val := range base {
			v[k] = val
		}
		v["density"] = d

		trial, err := cornfieldTrial(v)
		if err != nil {
			return nil, 0, err
		}
		runner := montecarlo.NewRunner(src.Stream(fmt.Sprintf("density-%v", d)))
		runner.SetIterations(iterations)
		res, err := runner.Run(ctx, trial)
		if err != nil {
			return nil, 0, err
		}
		estimates = append(estimates, DensityEstimate{Density: d, Result: res})
		if res.Mean > estimates[best].Result.Mean {
			best = i
		}
	}
	return estimates, best, nil
}
