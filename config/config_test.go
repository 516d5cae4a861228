package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := New()
	is.Equal(c.Trials(), uint64(100000))
	is.Equal(c.Workers(), 0)
	is.Equal(c.Confidence(), 95.0)
	is.Equal(c.Debug(), false)
	is.Equal(c.ResultsDBPath(), "montelab-results.db")
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("MONTELAB_TRIALS", "500")
	t.Setenv("MONTELAB_MARGIN_OF_ERROR", "0.25")

	c := New()
	is.Equal(c.Trials(), uint64(500))
	is.Equal(c.MarginOfError(), 0.25)
}

func TestExplicitSetWins(t *testing.T) {
	is := is.New(t)
	t.Setenv("MONTELAB_SEED", "1")

	c := New()
	c.Set(KeySeed, uint64(99))
	is.Equal(c.Seed(), uint64(99))
}

func TestLoadMissingFileIsFine(t *testing.T) {
	is := is.New(t)
	c := New()
	is.NoErr(c.Load())
}
