package cli

import (
	"fmt"
	"io"

	"github.com/crank-bench/crank/internal/config"
)

const plotTypeHelp = `Plot types:
  window or win  display a window immediately (default 800x600)
  csv            save a CSV file of the raw data
  pdf            save a PDF file (default 432x324)
  png            save a PNG file (default 800x600)
  svg            save an SVG file (default 432x324)

You can optionally specify plot dimensions, e.g. window:640x480.
`

// printUsage writes the full usage text: the flag table, the plot-type
// help, and the positional-argument semantics.
func printUsage(w io.Writer, name string) {
	var deltas []config.Config
	var subErr error
	fs := newFlagSet(name, &deltas, &subErr)

	fmt.Fprintf(w, "Usage: %s [OPTIONS] [BENCHMARKS]\n\n", name)
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprint(w, plotTypeHelp)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "With no positional arguments, all benchmarks are run. Otherwise a")
	fmt.Fprintln(w, "benchmark runs when any argument is a prefix of its full name.")
}
