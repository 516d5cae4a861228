package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile returns the p-th percentile (0 to 100) of the sample using
// linear interpolation. The input does not need to be sorted.
func Percentile(sample []float64, p float64) float64 {
	if len(sample) == 0 {
		return 0.0
	}
	c := make([]float64, len(sample))
	copy(c, sample)
	sort.Float64s(c)
	return stat.Quantile(p/100, stat.LinInterp, c, nil)
}
