package scenario

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/rng"
)

func runScenario(t *testing.T, name string, args []string, iterations uint64) *montecarlo.Result {
	t.Helper()
	s, err := Lookup(name)
	require.NoError(t, err)
	v, err := s.ParseArgs(args)
	require.NoError(t, err)
	trial, err := s.Build(v)
	require.NoError(t, err)

	r := montecarlo.NewRunner(rng.NewSource(42))
	r.SetIterations(iterations)
	res, err := r.Run(context.Background(), trial)
	require.NoError(t, err)
	return res
}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "dice")
	assert.Contains(t, names, "cornfield")
	assert.Contains(t, names, "pi")

	_, err := Lookup("roulette")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestParseArgs(t *testing.T) {
	s, err := Lookup("dice")
	require.NoError(t, err)

	v, err := s.ParseArgs([]string{"dice=3"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Get("dice"))
	assert.Equal(t, 6.0, v.Get("sides"))

	_, err = s.ParseArgs([]string{"dice"})
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = s.ParseArgs([]string{"pips=4"})
	assert.ErrorIs(t, err, ErrUnknownParam)

	_, err = s.ParseArgs([]string{"dice=banana"})
	assert.Error(t, err)
}

func TestDiceSevenOrEleven(t *testing.T) {
	res := runScenario(t, "dice", nil, 200000)
	// P(7) = 6/36, P(11) = 2/36.
	assert.InDelta(t, 8.0/36.0, res.Mean, 0.005)
}

func TestPiEstimate(t *testing.T) {
	res := runScenario(t, "pi", nil, 300000)
	assert.InDelta(t, math.Pi, res.Mean, 0.02)
}

func TestCardsBlackjack(t *testing.T) {
	res := runScenario(t, "cards", nil, 200000)
	// P(natural) = 2 * (4/52) * (16/51).
	assert.InDelta(t, 2.0*4.0/52.0*16.0/51.0, res.Mean, 0.005)
}

func TestLotteryExpectation(t *testing.T) {
	res := runScenario(t, "lottery", []string{"tickets=50"}, 50000)
	// E[profit per ticket] = pj*jackpot + ps*small - cost.
	perTicket := 0.00002*10000 + 0.02*10 - 2
	assert.InDelta(t, 50*perTicket, res.Mean, 10)
}

func TestPortfolioGrowth(t *testing.T) {
	res := runScenario(t, "portfolio", []string{"years=10", "sigma=0.01"}, 20000)
	// With nearly no volatility, wealth compounds at close to mu.
	expected := 10000 * math.Pow(1.07, 10)
	assert.InDelta(t, expected, res.Mean, expected*0.02)
}

func TestAdFunnelExpectation(t *testing.T) {
	res := runScenario(t, "adfunnel", nil, 5000)
	// E[revenue] ~ impressions * ctr * cvr * revenue-per-conversion.
	expected := 100000 * 0.02 * 0.05 * 40.0
	assert.InDelta(t, expected, res.Mean, expected*0.05)
}

func TestSequentialConverges(t *testing.T) {
	res := runScenario(t, "sequential", []string{"tol=0.5"}, 2000)
	assert.GreaterOrEqual(t, res.Min, 10.0)
	assert.Less(t, res.Mean, 1e6)
}

func TestPowerIncreasesWithEffect(t *testing.T) {
	small := runScenario(t, "power", []string{"effect=0.1", "n=20", "shuffles=99"}, 400)
	large := runScenario(t, "power", []string{"effect=1.5", "n=20", "shuffles=99"}, 400)
	assert.Greater(t, large.Mean, 0.9)
	assert.Less(t, small.Mean, 0.5)
	assert.Greater(t, large.Mean, small.Mean)
}

func TestOptimizeDensity(t *testing.T) {
	densities := []float64{10, 20, 30, 40, 50, 60}
	estimates, best, err := OptimizeDensity(context.Background(), rng.NewSource(7),
		Values{}, densities, 20000)
	require.NoError(t, err)
	require.Len(t, estimates, len(densities))

	// Mean profit per acre is d * (price*(baseyield - crowding*d) - seedcost),
	// a downward parabola with defaults peaking near d = 22.
	assert.Equal(t, 20.0, estimates[best].Density)

	_, _, err = OptimizeDensity(context.Background(), rng.NewSource(7), Values{}, nil, 100)
	assert.Error(t, err)
}

func TestBuildValidation(t *testing.T) {
	for name, args := range map[string][]string{
		"dice":       {"dice=0"},
		"lottery":    {"tickets=0"},
		"cornfield":  {"density=-1"},
		"portfolio":  {"years=0"},
		"power":      {"n=1"},
		"adfunnel":   {"impressions=0"},
		"sequential": {"tol=0"},
	} {
		s, err := Lookup(name)
		require.NoError(t, err)
		v, err := s.ParseArgs(args)
		require.NoError(t, err)
		_, err = s.Build(v)
		assert.Error(t, err, "scenario %s should reject %v", name, args)
	}
}
