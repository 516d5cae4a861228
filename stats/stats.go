package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates summary statistics for a stream of observations
// without retaining them.
type Statistic struct {
	totalIterations int
	last            float64
	min             float64
	max             float64

	// For Welford's algorithm:
	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
		if val < s.min {
			s.min = val
		}
		if val > s.max {
			s.max = val
		}
	}
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}

// StandardError returns the standard error of the statistic.
func (s *Statistic) StandardError() float64 {
	if s.totalIterations == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.totalIterations))
}

func (s *Statistic) Iterations() int {
	return s.totalIterations
}

// Combine folds another accumulator into this one, as if every observation
// pushed into o had been pushed into s. Uses the pairwise update of Chan et
// al. so combining is exact up to floating-point rounding.
func (s *Statistic) Combine(o *Statistic) {
	if o.totalIterations == 0 {
		return
	}
	if s.totalIterations == 0 {
		*s = *o
		return
	}
	na := float64(s.totalIterations)
	nb := float64(o.totalIterations)
	n := na + nb
	delta := o.newM - s.newM

	s.newM += delta * nb / n
	s.newS += o.newS + delta*delta*na*nb/n
	s.oldM = s.newM
	s.oldS = s.newS
	s.totalIterations += o.totalIterations
	s.last = o.last
	if o.min < s.min {
		s.min = o.min
	}
	if o.max > s.max {
		s.max = o.max
	}
}
