package scenario

import (
	"errors"

	"github.com/montelab/montelab/dist"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "lottery",
		Description: "net profit of playing a season of lottery tickets with an explicit prize table",
		Unit:        "season profit ($)",
		Params: []Param{
			{Name: "cost", Usage: "ticket cost ($)", Default: 2},
			{Name: "jackpot", Usage: "jackpot prize ($)", Default: 10000},
			{Name: "pjackpot", Usage: "jackpot probability per ticket", Default: 0.00002},
			{Name: "small", Usage: "small prize ($)", Default: 10},
			{Name: "psmall", Usage: "small-prize probability per ticket", Default: 0.02},
			{Name: "tickets", Usage: "tickets bought per season", Default: 100},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			cost := v.Get("cost")
			tickets := int(v.Get("tickets"))
			if tickets < 1 {
				return nil, errors.New("lottery: need at least one ticket")
			}
			pJackpot := v.Get("pjackpot")
			pSmall := v.Get("psmall")
			values := []float64{v.Get("jackpot"), v.Get("small"), 0}
			probs := []float64{pJackpot, pSmall, 1 - pJackpot - pSmall}
			return func(src *rng.Source) (float64, error) {
				prizes, err := dist.NewDiscrete(src, values, probs)
				if err != nil {
					return 0, err
				}
				profit := 0.0
				for i := 0; i < tickets; i++ {
					profit += prizes.Rand() - cost
				}
				return profit, nil
			}, nil
		},
	})
}
