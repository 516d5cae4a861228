package scenario

import (
	"errors"

	"github.com/montelab/montelab/dist"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "adfunnel",
		Description: "daily ad revenue: impressions become clicks, clicks become conversions",
		Unit:        "daily revenue ($)",
		Params: []Param{
			{Name: "impressions", Usage: "ad impressions per day", Default: 100000},
			{Name: "ctr", Usage: "click-through rate", Default: 0.02},
			{Name: "cvr", Usage: "conversion rate per click", Default: 0.05},
			{Name: "revenue", Usage: "mean revenue per conversion ($)", Default: 40},
			{Name: "revenuesd", Usage: "stdev of revenue per conversion ($)", Default: 12},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			impressions := int(v.Get("impressions"))
			if impressions < 1 {
				return nil, errors.New("adfunnel: need at least one impression")
			}
			ctr := v.Get("ctr")
			cvr := v.Get("cvr")
			revMean := v.Get("revenue")
			revSD := v.Get("revenuesd")
			return func(src *rng.Source) (float64, error) {
				clickDist, err := dist.Binomial(src, impressions, ctr)
				if err != nil {
					return 0, err
				}
				clicks := int(clickDist.Rand())
				if clicks == 0 {
					return 0, nil
				}
				convDist, err := dist.Binomial(src, clicks, cvr)
				if err != nil {
					return 0, err
				}
				conversions := int(convDist.Rand())
				if conversions == 0 {
					return 0, nil
				}
				perConv, err := dist.Normal(src, revMean, revSD)
				if err != nil {
					return 0, err
				}
				total := 0.0
				for i := 0; i < conversions; i++ {
					total += max(0, perConv.Rand())
				}
				return total, nil
			}, nil
		},
	})
}
