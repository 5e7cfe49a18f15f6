// Package cli implements the command-line pipeline: a declarative option
// table over a pflag FlagSet, ordered-delta argument parsing, benchmark
// selection, and the top-level dispatcher.
package cli

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/crank-bench/crank/internal/config"
)

// flagValue adapts a delta-producing parse function to pflag.Value. Every
// successful Set appends one delta to the shared slice, so deltas come out
// in command-line order and repeated flags naturally stack. The first
// parse failure is captured raw so the caller can report it without
// pflag's "invalid argument" wrapping.
type flagValue struct {
	argType  string
	parse    func(string) (config.Config, error)
	deltas   *[]config.Config
	firstErr *error
}

func (v *flagValue) Set(s string) error {
	d, err := v.parse(s)
	if err != nil {
		if *v.firstErr == nil {
			*v.firstErr = err
		}
		return err
	}
	*v.deltas = append(*v.deltas, d)
	return nil
}

func (v *flagValue) String() string { return "" }

// Type doubles as the argument placeholder in usage output, so "-I, --ci"
// renders as "-I, --ci CI".
func (v *flagValue) Type() string { return v.argType }

// option is one row of the option table.
type option struct {
	long  string
	short string
	// argType is the usage placeholder for flags taking an argument;
	// empty means the flag takes none.
	argType string
	usage   string
	hidden  bool
	parse   func(string) (config.Config, error)
}

// fixed returns a parse function ignoring its argument and always
// producing the same delta; used by flags that take no argument.
func fixed(d config.Config) func(string) (config.Config, error) {
	return func(string) (config.Config, error) { return d, nil }
}

func boolPtr(b bool) *bool { return &b }

func verbosityPtr(v config.Verbosity) *config.Verbosity { return &v }

// options is the full table of recognized flags. Order here is display
// order in usage output.
var options = []option{
	{long: "help", short: "h", usage: "show this help, then exit",
		parse: fixed(config.Config{ExitAction: config.Help})},
	{long: "help-alias", short: "?", hidden: true,
		parse: fixed(config.Config{ExitAction: config.Help})},
	{long: "no-gc", short: "G", usage: "do not collect garbage between iterations",
		parse: fixed(config.Config{GC: boolPtr(false)})},
	{long: "gc", short: "g", usage: "collect garbage between iterations",
		parse: fixed(config.Config{GC: boolPtr(true)})},
	{long: "ci", short: "I", argType: "CI", usage: "bootstrap confidence interval",
		parse: func(s string) (config.Config, error) {
			d, err := config.ParseConfidenceInterval(s)
			if err != nil {
				return config.Config{}, err
			}
			return config.Config{CI: &d}, nil
		}},
	{long: "list", short: "l", usage: "print a list of all benchmark names, then exit",
		parse: fixed(config.Config{ExitAction: config.List})},
	{long: "plot-kde", short: "k", argType: "TYPE", usage: "plot kernel density estimate of probe times",
		parse: plotParser(config.KDE)},
	{long: "kde-same-axis", usage: "plot all KDE curves on the same axis",
		parse: fixed(config.Config{SameAxis: boolPtr(true)})},
	{long: "quiet", short: "q", usage: "print less output",
		parse: fixed(config.Config{Verbosity: verbosityPtr(config.Quiet)})},
	{long: "resamples", argType: "N", usage: "number of bootstrap resamples to perform",
		parse: positiveParser("resample count", func(n int) config.Config {
			return config.Config{Resamples: &n}
		})},
	{long: "samples", short: "s", argType: "N", usage: "number of samples to collect",
		parse: positiveParser("sample count", func(n int) config.Config {
			return config.Config{Samples: &n}
		})},
	{long: "plot-timing", short: "t", argType: "TYPE", usage: "plot timing of probes",
		parse: plotParser(config.Timing)},
	{long: "summary", short: "u", argType: "FILENAME", usage: "produce a summary CSV file of all results",
		parse: func(s string) (config.Config, error) {
			return config.Config{SummaryFile: &s}, nil
		}},
	{long: "version", short: "V", usage: "display version, then exit",
		parse: fixed(config.Config{ExitAction: config.Version})},
	{long: "verbose", short: "v", usage: "print more output",
		parse: fixed(config.Config{Verbosity: verbosityPtr(config.Verbose)})},
}

func plotParser(kind config.PlotKind) func(string) (config.Config, error) {
	return func(s string) (config.Config, error) {
		out, err := config.ParsePlotOutput(s)
		if err != nil {
			return config.Config{}, err
		}
		return config.WithPlot(kind, out), nil
	}
}

func positiveParser(quantity string, set func(int) config.Config) func(string) (config.Config, error) {
	return func(s string) (config.Config, error) {
		n, err := config.ParsePositive(quantity, s)
		if err != nil {
			return config.Config{}, err
		}
		return set(n), nil
	}
}

// newFlagSet builds a FlagSet over the option table. Deltas are appended
// to *deltas in parse order; the first sub-parser failure lands in
// *firstErr. The FlagSet never prints: the dispatcher owns all output.
func newFlagSet(name string, deltas *[]config.Config, firstErr *error) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	for _, opt := range options {
		argType := opt.argType
		if argType == "" {
			// Rendered like a bool flag: no placeholder in usage,
			// groupable in short clusters.
			argType = "bool"
		}
		v := &flagValue{argType: argType, parse: opt.parse, deltas: deltas, firstErr: firstErr}
		fs.VarP(v, opt.long, opt.short, opt.usage)
		f := fs.Lookup(opt.long)
		if opt.argType == "" {
			f.NoOptDefVal = "true"
		}
		if opt.hidden {
			f.Hidden = true
		}
	}
	return fs
}
