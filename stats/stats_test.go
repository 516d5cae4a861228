package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestRunningStatExtrema(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{3, -7, 12, 0.5, 12, -2} {
		s.Push(v)
	}
	is.Equal(s.Min(), -7.0)
	is.Equal(s.Max(), 12.0)
	is.Equal(s.Last(), -2.0)
	is.Equal(s.Iterations(), 6)
}

func TestStandardError(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}
	// stdev of this sample is ~2.138, n = 8
	is.True(FuzzyEqual(s.StandardError(), s.Stdev()/2.8284271247461903))

	empty := &Statistic{}
	is.Equal(empty.StandardError(), 0.0)
}

func TestCombine(t *testing.T) {
	is := is.New(t)
	vals := []float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}

	var whole, left, right Statistic
	for i, v := range vals {
		whole.Push(v)
		if i < 4 {
			left.Push(v)
		} else {
			right.Push(v)
		}
	}
	left.Combine(&right)
	is.True(FuzzyEqual(left.Mean(), whole.Mean()))
	is.True(FuzzyEqual(left.Stdev(), whole.Stdev()))
	is.Equal(left.Iterations(), whole.Iterations())
	is.Equal(left.Min(), whole.Min())
	is.Equal(left.Max(), whole.Max())

	// Combining into an empty accumulator copies.
	var empty Statistic
	empty.Combine(&whole)
	is.True(FuzzyEqual(empty.Mean(), whole.Mean()))
	is.Equal(empty.Iterations(), whole.Iterations())
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))
	is.True(FuzzyEqual(Z95, ZVal(95)))
}

func TestPercentile(t *testing.T) {
	is := is.New(t)
	sample := []float64{9, 1, 8, 2, 7, 3, 6, 4, 5, 10}
	is.True(FuzzyEqual(Percentile(sample, 50), 5.5))
	is.Equal(Percentile(sample, 0), 1.0)
	is.Equal(Percentile(sample, 100), 10.0)
	is.Equal(Percentile(nil, 50), 0.0)
}
