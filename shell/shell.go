// Package shell implements the interactive montelab prompt.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/montelab/montelab/config"
	"github.com/montelab/montelab/montecarlo"
	"github.com/montelab/montelab/results"
	"github.com/montelab/montelab/rng"
	"github.com/montelab/montelab/scenario"
)

// ShellController drives the read-eval-print loop.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	store *results.Store

	seed          uint64
	trials        uint64
	workers       int
	confidence    float64
	marginOfError float64
	useAutostop   bool

	lastResult   *montecarlo.Result
	lastScenario string
	lastParams   string

	simLogFile *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func completer() *readline.PrefixCompleter {
	scenarios := []readline.PrefixCompleterInterface{}
	for _, name := range scenario.Names() {
		scenarios = append(scenarios, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("list"),
		readline.PcItem("describe", scenarios...),
		readline.PcItem("run", scenarios...),
		readline.PcItem("set",
			readline.PcItem("seed"),
			readline.PcItem("trials"),
			readline.PcItem("workers"),
			readline.PcItem("confidence"),
			readline.PcItem("margin"),
		),
		readline.PcItem("show"),
		readline.PcItem("hist"),
		readline.PcItem("bootstrap"),
		readline.PcItem("jackknife"),
		readline.PcItem("perm"),
		readline.PcItem("history"),
		readline.PcItem("log", readline.PcItem("off")),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mmontelab>\033[0m ",
		HistoryFile:     "/tmp/montelab-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		AutoComplete:        completer(),
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}

	sc := &ShellController{
		l:             l,
		cfg:           cfg,
		seed:          cfg.Seed(),
		trials:        cfg.Trials(),
		workers:       cfg.Workers(),
		confidence:    cfg.Confidence(),
		marginOfError: cfg.MarginOfError(),
	}
	if cfg.ResultsDBPath() != "" {
		store, err := results.Open(cfg.ResultsDBPath())
		if err != nil {
			log.Err(err).Msg("could not open results journal; history disabled")
		} else {
			sc.store = store
		}
	}
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) newSource() *rng.Source {
	if sc.seed == 0 {
		src := rng.NewEntropySource()
		sc.showMessage(fmt.Sprintf("(entropy seed %d; use `set seed` to reproduce)", src.Seed()))
		return src
	}
	return rng.NewSource(sc.seed)
}

func (sc *ShellController) runScenario(fields []string) error {
	if len(fields) < 1 {
		return errors.New("usage: run <scenario> [param=value ...]")
	}
	s, err := scenario.Lookup(fields[0])
	if err != nil {
		return err
	}
	values, err := s.ParseArgs(fields[1:])
	if err != nil {
		return err
	}
	trial, err := s.Build(values)
	if err != nil {
		return err
	}

	src := sc.newSource()
	runner := montecarlo.NewRunner(src)
	runner.SetIterations(sc.trials)
	if sc.workers > 0 {
		runner.SetThreads(sc.workers)
	}
	runner.SetConfidence(sc.confidence)
	runner.SetKeepSamples(true)
	if sc.useAutostop {
		runner.SetStoppingCondition(montecarlo.StopAtMarginOfError)
		runner.SetMarginOfError(sc.marginOfError)
	}
	if sc.simLogFile != nil {
		runner.SetLogStream(sc.simLogFile)
	}

	ctx := log.Logger.WithContext(context.Background())
	res, err := runner.Run(ctx, trial)
	if err != nil {
		return err
	}

	sc.lastResult = res
	sc.lastScenario = s.Name
	sc.lastParams = strings.Join(fields[1:], " ")

	sc.showMessage(fmt.Sprintf("%s (%s)", s.Name, s.Unit))
	sc.showMessage(res.String())

	if sc.store != nil {
		if err := sc.store.Record(ctx, s.Name, sc.lastParams, src.Seed(), res); err != nil {
			log.Err(err).Msg("could not journal run")
		}
	}
	return nil
}

func (sc *ShellController) setOption(fields []string) error {
	if len(fields) != 2 {
		return errors.New("usage: set seed|trials|workers|confidence|margin <value>")
	}
	switch fields[0] {
	case "seed":
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return err
		}
		sc.seed = v
	case "trials":
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return err
		}
		if v < 1 {
			return errors.New("trials must be at least 1")
		}
		sc.trials = v
	case "workers":
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		sc.workers = v
	case "confidence":
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if v <= 0 || v >= 100 {
			return errors.New("confidence must be between 0 and 100 exclusive")
		}
		sc.confidence = v
	case "margin":
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if v <= 0 {
			sc.useAutostop = false
			sc.showMessage("margin-of-error stopping disabled")
			return nil
		}
		sc.marginOfError = v
		sc.useAutostop = true
	default:
		return fmt.Errorf("unknown option %q", fields[0])
	}
	sc.showMessage(fmt.Sprintf("%s = %s", fields[0], fields[1]))
	return nil
}

func (sc *ShellController) setLog(fields []string) error {
	if len(fields) != 1 {
		return errors.New("usage: log <file>|off")
	}
	if sc.simLogFile != nil {
		if err := sc.simLogFile.Close(); err != nil {
			return err
		}
		sc.simLogFile = nil
	}
	if fields[0] == "off" {
		sc.showMessage("iteration logging off")
		return nil
	}
	f, err := os.Create(fields[0])
	if err != nil {
		return err
	}
	sc.simLogFile = f
	sc.showMessage("runs will log iterations to " + fields[0])
	return nil
}

func (sc *ShellController) showHistory(fields []string) error {
	if sc.store == nil {
		return errors.New("results journal is not open")
	}
	limit := 10
	if len(fields) > 0 {
		var err error
		limit, err = strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
	}
	runs, err := sc.store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		sc.showMessage("no journaled runs yet")
		return nil
	}
	var ss strings.Builder
	fmt.Fprintf(&ss, "%-20s%-24s%-12s%-14s%-12s%s\n",
		"Scenario", "Params", "Iters", "Mean", "Stderr", "When")
	for _, r := range runs {
		fmt.Fprintf(&ss, "%-20s%-24s%-12d%-14.6g%-12.3g%s\n",
			r.Scenario, r.Params, r.Iterations, r.Mean, r.StandardError,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	sc.showMessage(ss.String())
	return nil
}

func (sc *ShellController) dispatch(line string, sig chan os.Signal) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "list":
		var ss strings.Builder
		for _, name := range scenario.Names() {
			s, _ := scenario.Lookup(name)
			fmt.Fprintf(&ss, "%-14s%s\n", name, s.Description)
		}
		sc.showMessage(ss.String())

	case "describe":
		if len(args) != 1 {
			sc.showError(errors.New("usage: describe <scenario>"))
			break
		}
		s, err := scenario.Lookup(args[0])
		if err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(s.Describe())

	case "run":
		if err := sc.runScenario(args); err != nil {
			sc.showError(err)
		}

	case "set":
		if err := sc.setOption(args); err != nil {
			sc.showError(err)
		}

	case "show":
		if sc.lastResult == nil {
			sc.showError(errors.New("no run yet; use `run <scenario>` first"))
			break
		}
		sc.showMessage(fmt.Sprintf("%s %s", sc.lastScenario, sc.lastParams))
		sc.showMessage(sc.lastResult.String())

	case "hist":
		if err := sc.showHistogram(args); err != nil {
			sc.showError(err)
		}

	case "bootstrap":
		if err := sc.bootstrapCmd(args); err != nil {
			sc.showError(err)
		}

	case "jackknife":
		if err := sc.jackknifeCmd(args); err != nil {
			sc.showError(err)
		}

	case "perm":
		if err := sc.permCmd(args); err != nil {
			sc.showError(err)
		}

	case "history":
		if err := sc.showHistory(args); err != nil {
			sc.showError(err)
		}

	case "log":
		if err := sc.setLog(args); err != nil {
			sc.showError(err)
		}

	case "help":
		if len(args) == 0 {
			usage(sc.l.Stderr())
		} else {
			usageTopic(sc.l.Stderr(), args[0])
		}

	case "exit", "bye":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	default:
		sc.showError(fmt.Errorf("unknown command %q; try `help`", cmd))
	}
	return nil
}

// Execute dispatches a single command line, for one-shot invocations.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.dispatch(strings.TrimSpace(line), sig)
}

// Loop runs the prompt until EOF or an exit command.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.Cleanup()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.dispatch(line, sig); err != nil {
			break
		}
	}
	log.Debug().Msg("exiting readline loop")
}

// Cleanup closes the readline instance, the journal and any open log file.
func (sc *ShellController) Cleanup() {
	sc.l.Close()
	if sc.simLogFile != nil {
		sc.simLogFile.Close()
		sc.simLogFile = nil
	}
	if sc.store != nil {
		sc.store.Close()
		sc.store = nil
	}
}
