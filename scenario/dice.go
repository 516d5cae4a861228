package scenario

import (
	"errors"

	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func init() {
	register(&Scenario{
		Name:        "dice",
		Description: "roll dice and win on a natural (7 or 11 with two dice)",
		Unit:        "win probability",
		Params: []Param{
			{Name: "dice", Usage: "number of dice per roll", Default: 2},
			{Name: "sides", Usage: "sides per die", Default: 6},
		},
		Build: func(v Values) (montecarlo.Trial, error) {
			nDice := int(v.Get("dice"))
			sides := int(v.Get("sides"))
			if nDice < 1 || sides < 2 {
				return nil, errors.New("dice: need at least one die with at least two sides")
			}
			return func(src *rng.Source) (float64, error) {
				total := 0
				for i := 0; i < nDice; i++ {
					total += src.IntN(sides) + 1
				}
				if total == 7 || total == 11 {
					return 1, nil
				}
				return 0, nil
			}, nil
		},
	})
}
