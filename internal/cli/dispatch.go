package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/crank-bench/crank/internal/config"
)

// Exit codes. ExitUsage follows the conventional "command line usage
// error" code; run failures propagate the engine's own code.
const (
	ExitOK    = 0
	ExitFail  = 1
	ExitUsage = 64
)

// SummaryHeader is the one header line written to a fresh summary CSV
// before any measurement begins. Result rows are appended by the engine.
const SummaryHeader = "Name,Mean,MeanLB,MeanUB,Stddev,StddevLB,StddevUB\n"

// App wires the command-line pipeline to its collaborators. Names yields
// the flattened fully-qualified benchmark names in declared order; Run
// hands the final configuration and a selection predicate to the
// measurement engine.
type App struct {
	// Name is the program name used in usage and error text.
	Name string

	// Args is the raw argument list, excluding the program name.
	Args []string

	Stdout io.Writer
	Stderr io.Writer

	Names func() []string
	Run   func(match func(string) bool, cfg config.Config) error
}

// Execute parses Args, merges the flag deltas over baseline, and
// dispatches: help, version, list, or run. It returns the process exit
// code; it never calls os.Exit itself so the pipeline stays testable.
func (a *App) Execute(baseline config.Config) int {
	deltas, filters, err := Parse(a.Name, a.Args)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", err.Error())
		fmt.Fprintf(a.Stderr, "Run %q for usage information\n", a.Name+" --help")
		return ExitUsage
	}

	cfg := baseline
	for _, d := range deltas {
		cfg = config.Merge(cfg, d)
	}

	switch cfg.ExitAction {
	case config.Help:
		a.printBanner(cfg)
		fmt.Fprintln(a.Stdout)
		printUsage(a.Stdout, a.Name)
		return ExitOK
	case config.Version:
		a.printBanner(cfg)
		return ExitOK
	case config.List:
		names := append([]string(nil), a.Names()...)
		sort.Strings(names)
		fmt.Fprintln(a.Stdout, "Benchmarks:")
		for _, n := range names {
			fmt.Fprintln(a.Stdout, n)
		}
		return ExitOK
	}

	if cfg.SummaryFile != nil {
		if err := writeSummaryHeader(*cfg.SummaryFile); err != nil {
			fmt.Fprintf(a.Stderr, "Error: %v\n", err)
			return ExitFail
		}
	}

	if err := a.Run(Matches(filters), cfg); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitFail
	}
	return ExitOK
}

func (a *App) printBanner(cfg config.Config) {
	if cfg.Banner != nil {
		fmt.Fprintln(a.Stdout, *cfg.Banner)
	}
}

// writeSummaryHeader creates or truncates path and writes the header line.
func writeSummaryHeader(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening summary file: %w", err)
	}
	if _, err := f.WriteString(SummaryHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing summary header: %w", err)
	}
	return f.Close()
}
