// Package scenario holds the simulation exercises. Each scenario names its
// parameters, carries defaults, and builds a montecarlo.Trial; the shell
// and CLI discover scenarios through the registry.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/montelab/montelab/montecarlo"
)

var (
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrBadParam        = errors.New("malformed parameter, expected key=value")
)

// Param describes one numeric parameter of a scenario.
type Param struct {
	Name    string
	Usage   string
	Default float64
}

// Values holds the resolved parameters for one run.
type Values map[string]float64

func (v Values) Get(name string) float64 {
	return v[name]
}

// Scenario is a named, parameterized exercise.
type Scenario struct {
	Name        string
	Description string
	// Unit describes what one observation measures ("profit ($)",
	// "probability", ...), for display.
	Unit   string
	Params []Param
	Build  func(v Values) (montecarlo.Trial, error)
}

// Describe returns a short usage block for the scenario.
func (s *Scenario) Describe() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "%s — %s\n", s.Name, s.Description)
	fmt.Fprintf(&ss, "reports: %s\n", s.Unit)
	if len(s.Params) > 0 {
		fmt.Fprintf(&ss, "parameters:\n")
		for _, p := range s.Params {
			fmt.Fprintf(&ss, "  %-12s %s (default %v)\n", p.Name, p.Usage, p.Default)
		}
	}
	return ss.String()
}

// ParseArgs resolves key=value argument strings against the scenario's
// parameters, falling back to defaults.
func (s *Scenario) ParseArgs(args []string) (Values, error) {
	v := Values{}
	for _, p := range s.Params {
		v[p.Name] = p.Default
	}
	known := lo.SliceToMap(s.Params, func(p Param) (string, bool) { return p.Name, true })
	for _, arg := range args {
		key, raw, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("%q: %w", arg, ErrBadParam)
		}
		if !known[key] {
			return nil, fmt.Errorf("%s has no parameter %q: %w", s.Name, key, ErrUnknownParam)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		v[key] = f
	}
	return v, nil
}

var registry = map[string]*Scenario{}

func register(s *Scenario) {
	if _, ok := registry[s.Name]; ok {
		panic("duplicate scenario name: " + s.Name)
	}
	registry[s.Name] = s
}

// Lookup finds a scenario by name.
func Lookup(name string) (*Scenario, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScenario)
	}
	return s, nil
}

// Names lists the registered scenarios, sorted.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}
