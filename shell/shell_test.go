package shell

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestLookupDataset(t *testing.T) {
	is := is.New(t)

	data, err := lookupDataset("wrenches")
	is.NoErr(err)
	is.Equal(len(data), 20)

	_, err = lookupDataset("sprockets")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "donationsA"))
}

func TestParseReps(t *testing.T) {
	is := is.New(t)

	n, err := parseReps(nil, 0, 5000)
	is.NoErr(err)
	is.Equal(n, 5000)

	n, err = parseReps([]string{"wrenches", "250"}, 1, 5000)
	is.NoErr(err)
	is.Equal(n, 250)

	_, err = parseReps([]string{"abc"}, 0, 1)
	is.True(err != nil)
}

func TestUsageTopics(t *testing.T) {
	is := is.New(t)

	var b strings.Builder
	usageTopic(&b, "seeds")
	is.True(strings.Contains(b.String(), "entropy"))

	b.Reset()
	usageTopic(&b, "nope")
	is.True(strings.Contains(b.String(), "no help text"))

	b.Reset()
	usage(&b)
	is.True(strings.Contains(b.String(), "bootstrap"))
}
