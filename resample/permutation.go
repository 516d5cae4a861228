package resample

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/montelab/montelab/rng"
)

// PermutationResult holds the outcome of a two-sample permutation test.
type PermutationResult struct {
	// ObservedDiff is statistic(groupA) - statistic(groupB).
	ObservedDiff float64
	// PValueOneSided is the achieved significance level of the one-sided
	// test H1: statistic(A) > statistic(B).
	PValueOneSided float64
	// PValueTwoSided tests H1: the groups differ.
	PValueTwoSided float64
	// Shuffles is the number of label permutations drawn.
	Shuffles int
	nullDist []float64
}

// NullDistribution returns the permuted difference for every shuffle.
func (p *PermutationResult) NullDistribution() []float64 {
	return p.nullDist
}

// PermutationTest shuffles the group labels m times to build the null
// distribution of statistic(A) - statistic(B). P-values use the +1
// small-sample correction so they are never exactly zero.
func PermutationTest(ctx context.Context, src *rng.Source, groupA, groupB []float64, statistic Statistic, m int) (*PermutationResult, error) {
	logger := zerolog.Ctx(ctx)
	if len(groupA) == 0 || len(groupB) == 0 {
		return nil, ErrEmptyData
	}
	if m < 1 {
		return nil, ErrTooFewReps
	}

	observed := statistic(groupA) - statistic(groupB)

	pooled := make([]float64, 0, len(groupA)+len(groupB))
	pooled = append(pooled, groupA...)
	pooled = append(pooled, groupB...)
	nA := len(groupA)

	nullDist := make([]float64, m)
	threads := max(1, runtime.NumCPU())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for s := 0; s < m; s++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ssrc := src.Stream(fmt.Sprintf("shuffle-%d", s))
			perm := make([]float64, len(pooled))
			copy(perm, pooled)
			ssrc.Shuffle(len(perm), func(i, j int) {
				perm[i], perm[j] = perm[j], perm[i]
			})
			nullDist[s] = statistic(perm[:nA]) - statistic(perm[nA:])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	greater := 0
	extreme := 0
	for _, d := range nullDist {
		if d >= observed {
			greater++
		}
		if math.Abs(d) >= math.Abs(observed) {
			extreme++
		}
	}
	res := &PermutationResult{
		ObservedDiff:   observed,
		PValueOneSided: float64(greater+1) / float64(m+1),
		PValueTwoSided: float64(extreme+1) / float64(m+1),
		Shuffles:       m,
		nullDist:       nullDist,
	}
	logger.Debug().Int("shuffles", m).Float64("p2", res.PValueTwoSided).Msg("permutation-test-complete")
	return res, nil
}
