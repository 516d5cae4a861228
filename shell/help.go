package shell

import (
	"fmt"
	"io"
)

const usageText = `montelab commands:

  list                         show the available scenarios
  describe <scenario>          show a scenario's parameters and defaults
  run <scenario> [k=v ...]     estimate the scenario with the current settings
  set seed <n>                 set the seed (0 draws a fresh entropy seed per run)
  set trials <n>               set the iteration budget
  set workers <n>              set the worker count (0 = one per CPU)
  set confidence <pct>         set the confidence level for intervals
  set margin <tol>             stop runs early at this margin of error (<=0 disables)
  show                         reprint the last result
  hist [bins]                  terminal histogram of the last run's samples
  bootstrap <dataset> [B]      bootstrap the mean of a built-in dataset
  jackknife <dataset>          jackknife the mean of a built-in dataset
  perm [shuffles]              permutation test of donationsB vs donationsA
  history [n]                  list recent journaled runs
  log <file>|off               write per-iteration YAML logs to a file
  help [topic]                 this message, or details on a topic
  exit                         quit

Help topics: seeds, stopping, datasets.
`

var helpTopics = map[string]string{
	"seeds": `With seed 0 (the default), every run draws a fresh seed from system
entropy and prints it, so any run can be reproduced later with
  set seed <printed value>
A nonzero seed makes every run fully deterministic for a fixed worker
count and trial budget.
`,
	"stopping": `By default a run spends its whole trial budget. After
  set margin <tol>
runs end as soon as the confidence interval half-width around the running
mean drops below tol (checked periodically), or when the budget runs out,
whichever comes first.
`,
	"datasets": `Built-in datasets for the resampling commands:
  wrenches     20 measured lengths (cm) of nominally 20cm wrenches
  donationsA   hourly donation totals ($) under page A
  donationsB   hourly donation totals ($) under page B
`,
}

func usage(w io.Writer) {
	io.WriteString(w, usageText)
}

func usageTopic(w io.Writer, topic string) {
	text, ok := helpTopics[topic]
	if !ok {
		fmt.Fprintf(w, "There is no help text for the topic %s\n", topic)
		return
	}
	io.WriteString(w, text)
}
