package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/crank-bench/crank/internal/config"
)

// colorScheme holds the colors used by the console reporter.
type colorScheme struct {
	Name  *color.Color
	Value *color.Color
	Note  *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		Name:  color.New(color.FgCyan, color.Bold),
		Value: color.New(color.FgGreen),
		Note:  color.New(color.FgYellow),
	}
	if !enabled {
		s.Name.DisableColor()
		s.Value.DisableColor()
		s.Note.DisableColor()
	}
	return s
}

// reporter writes per-benchmark progress and results honoring the
// configured verbosity. Colors are enabled only when writing straight to
// a terminal.
type reporter struct {
	w         io.Writer
	verbosity config.Verbosity
	scheme    *colorScheme
}

func newReporter(w io.Writer, verbosity config.Verbosity) *reporter {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &reporter{w: w, verbosity: verbosity, scheme: newColorScheme(enabled)}
}

func (r *reporter) calibration(cal Calibration) {
	if r.verbosity < config.Verbose {
		return
	}
	fmt.Fprintf(r.w, "clock resolution: %s, clock read cost: %s\n",
		formatSeconds(cal.Resolution.Seconds()), formatSeconds(cal.ClockCost.Seconds()))
}

func (r *reporter) benchmarking(name string) {
	if r.verbosity < config.Normal {
		return
	}
	fmt.Fprintf(r.w, "benchmarking %s\n", r.scheme.Name.Sprint(name))
}

func (r *reporter) result(res *Result) {
	if r.verbosity < config.Normal {
		return
	}
	r.estimateLine("mean", res.Mean)
	r.estimateLine("std dev", res.Stddev)
	if r.verbosity >= config.Verbose {
		fmt.Fprintf(r.w, "%d iterations per sample, %d samples\n", res.Iters, len(res.Times))
		fmt.Fprintf(r.w, "p50: %s, p90: %s, p99: %s\n",
			formatSeconds(float64(res.Hist.ValueAtQuantile(50))/float64(time.Second)),
			formatSeconds(float64(res.Hist.ValueAtQuantile(90))/float64(time.Second)),
			formatSeconds(float64(res.Hist.ValueAtQuantile(99))/float64(time.Second)))
	}
	fmt.Fprintln(r.w)
}

func (r *reporter) estimateLine(label string, e Estimate) {
	fmt.Fprintf(r.w, "%s: %s, lb %s, ub %s, ci %.3f\n",
		label,
		r.scheme.Value.Sprint(formatSeconds(e.Point)),
		formatSeconds(e.Lower),
		formatSeconds(e.Upper),
		e.Confidence)
}

func (r *reporter) note(format string, args ...any) {
	if r.verbosity < config.Normal {
		return
	}
	fmt.Fprintln(r.w, r.scheme.Note.Sprintf(format, args...))
}

// formatSeconds renders a duration given in seconds with an SI unit
// chosen to keep the mantissa readable.
func formatSeconds(s float64) string {
	switch {
	case s >= 1:
		return fmt.Sprintf("%.4g s", s)
	case s >= 1e-3:
		return fmt.Sprintf("%.4g ms", s*1e3)
	case s >= 1e-6:
		return fmt.Sprintf("%.4g us", s*1e6)
	default:
		return fmt.Sprintf("%.4g ns", s*1e9)
	}
}

// appendSummary appends one CSV row per result to the summary file whose
// header the dispatcher already wrote.
func appendSummary(path string, results []*Result) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening summary file: %w", err)
	}
	w := csv.NewWriter(f)
	for _, res := range results {
		row := []string{
			res.Name,
			formatFloat(res.Mean.Point),
			formatFloat(res.Mean.Lower),
			formatFloat(res.Mean.Upper),
			formatFloat(res.Stddev.Point),
			formatFloat(res.Stddev.Lower),
			formatFloat(res.Stddev.Upper),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing summary rows: %w", err)
	}
	return f.Close()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// emitPlots materializes the configured plot outputs. Only the CSV format
// produces files here; graphical rendering backends are not part of this
// build, so those formats get a one-line notice instead.
func emitPlots(cfg config.Config, results []*Result, rep *reporter) error {
	for _, kind := range []config.PlotKind{config.KDE, config.Timing} {
		out, ok := cfg.Plots[kind]
		if !ok {
			continue
		}
		if out.Format != config.CSV {
			rep.note("not built with %s plot support; use csv", out.Format)
			continue
		}
		var err error
		if kind == config.KDE {
			err = writeKDECSV(results, cfg.SameAxis != nil && *cfg.SameAxis)
		} else {
			err = writeTimingCSV(results)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// plotFileName derives a filesystem-safe per-benchmark plot file name.
func plotFileName(benchName, kind string) string {
	safe := strings.NewReplacer("/", "-", " ", "_").Replace(benchName)
	return safe + "-" + kind + ".csv"
}

// writeKDECSV writes the kernel density curve of each result. With
// sameAxis all curves land in a single kde.csv keyed by benchmark name;
// otherwise each benchmark gets its own file.
func writeKDECSV(results []*Result, sameAxis bool) error {
	if sameAxis {
		f, err := os.Create("kde.csv")
		if err != nil {
			return fmt.Errorf("creating kde.csv: %w", err)
		}
		w := csv.NewWriter(f)
		w.Write([]string{"Name", "Time", "Density"})
		for _, res := range results {
			xs, ys := kde(res.Times)
			for i := range xs {
				w.Write([]string{res.Name, formatFloat(xs[i]), formatFloat(ys[i])})
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return fmt.Errorf("writing kde.csv: %w", err)
		}
		return f.Close()
	}

	for _, res := range results {
		name := plotFileName(res.Name, "kde")
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		w := csv.NewWriter(f)
		w.Write([]string{"Time", "Density"})
		xs, ys := kde(res.Times)
		for i := range xs {
			w.Write([]string{formatFloat(xs[i]), formatFloat(ys[i])})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// writeTimingCSV writes the raw per-sample timing series of each result.
func writeTimingCSV(results []*Result) error {
	for _, res := range results {
		name := plotFileName(res.Name, "timing")
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		w := csv.NewWriter(f)
		w.Write([]string{"Sample", "Time"})
		for i, t := range res.Times {
			w.Write([]string{strconv.Itoa(i), formatFloat(t)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
