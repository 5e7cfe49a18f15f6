// Package config defines the mergeable benchmark-run configuration and the
// parsers that turn raw flag values into configuration deltas.
//
// A Config is a struct of independently optional fields: nil means "unset"
// and is distinct from any concrete setting. Every recognized flag
// occurrence produces a delta (a Config with exactly one field set), and
// the effective configuration is the library baseline overlaid by the
// deltas in command-line order via Merge.
package config

// ExitAction selects an early-exit branch of the dispatcher. The zero
// value None means "proceed to run benchmarks" and doubles as unset, so a
// later Help/Version/List always wins a merge over it.
type ExitAction int

const (
	None ExitAction = iota
	Help
	Version
	List
)

// Verbosity controls how chatty the console reporter is.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
)

// PlotKind identifies which statistical curve a plot depicts.
type PlotKind int

const (
	// KDE is a kernel density estimate of per-iteration times.
	KDE PlotKind = iota
	// Timing is the raw per-sample timing series.
	Timing
)

func (k PlotKind) String() string {
	switch k {
	case KDE:
		return "kde"
	case Timing:
		return "timing"
	}
	return "unknown"
}

// PlotFormat is the output medium for a plot.
type PlotFormat int

const (
	Window PlotFormat = iota
	PDF
	PNG
	SVG
	CSV
)

func (f PlotFormat) String() string {
	switch f {
	case Window:
		return "window"
	case PDF:
		return "pdf"
	case PNG:
		return "png"
	case SVG:
		return "svg"
	case CSV:
		return "csv"
	}
	return "unknown"
}

// PlotOutput describes where and how large a plot should be rendered.
// Width and Height are pixels for Window and PNG, points (72 dpi) for PDF
// and SVG, and zero for CSV, which carries no dimensions.
type PlotOutput struct {
	Format PlotFormat
	Width  int
	Height int
}

// Config is a partially-specified benchmark-run configuration. Pointer
// fields distinguish unset (nil) from an explicit setting, which is what
// makes last-flag-wins merging possible.
type Config struct {
	// ExitAction requests an early exit (help/version/list) instead of a run.
	ExitAction ExitAction

	// GC forces a garbage collection between benchmark samples when true.
	GC *bool

	// Verbosity selects console output volume.
	Verbosity *Verbosity

	// CI is the bootstrap confidence-interval width, in the open
	// interval (0,1).
	CI *float64

	// Resamples is the bootstrap resample count, > 0.
	Resamples *int

	// Samples is the number of timing samples collected per benchmark, > 0.
	Samples *int

	// Plots maps each plot kind to its requested output. Keys are unique;
	// a later setting for a kind replaces the earlier one.
	Plots map[PlotKind]PlotOutput

	// SameAxis plots every KDE curve on a single shared axis.
	SameAxis *bool

	// SummaryFile is the path of the CSV summary to write.
	SummaryFile *string

	// Banner identifies the tool in help and version output.
	Banner *string
}

// Merge overlays b onto a: for every scalar field b's value wins when set,
// otherwise a's survives; Plots is a key-wise union with b overwriting per
// key. Merge is associative and the zero Config is an identity on both
// sides, so deltas can be folded pairwise in any grouping as long as order
// is preserved. Neither argument is mutated.
func Merge(a, b Config) Config {
	out := a
	if b.ExitAction != None {
		out.ExitAction = b.ExitAction
	}
	if b.GC != nil {
		out.GC = b.GC
	}
	if b.Verbosity != nil {
		out.Verbosity = b.Verbosity
	}
	if b.CI != nil {
		out.CI = b.CI
	}
	if b.Resamples != nil {
		out.Resamples = b.Resamples
	}
	if b.Samples != nil {
		out.Samples = b.Samples
	}
	if len(b.Plots) > 0 {
		merged := make(map[PlotKind]PlotOutput, len(a.Plots)+len(b.Plots))
		for k, v := range a.Plots {
			merged[k] = v
		}
		for k, v := range b.Plots {
			merged[k] = v
		}
		out.Plots = merged
	}
	if b.SameAxis != nil {
		out.SameAxis = b.SameAxis
	}
	if b.SummaryFile != nil {
		out.SummaryFile = b.SummaryFile
	}
	if b.Banner != nil {
		out.Banner = b.Banner
	}
	return out
}

// Default returns the library baseline configuration. Baseline values
// apply only where no flag delta set the field.
func Default() Config {
	gc := false
	verbosity := Normal
	ci := 0.95
	resamples := 100000
	samples := 100
	return Config{
		GC:        &gc,
		Verbosity: &verbosity,
		CI:        &ci,
		Resamples: &resamples,
		Samples:   &samples,
	}
}

// WithPlot returns a delta setting a single plot output.
func WithPlot(kind PlotKind, out PlotOutput) Config {
	return Config{Plots: map[PlotKind]PlotOutput{kind: out}}
}

// Helpers below read effective values after the baseline has been merged
// in; the fallbacks only matter for a Config constructed by hand.

// EffectiveVerbosity returns the configured verbosity, defaulting to Normal.
func (c Config) EffectiveVerbosity() Verbosity {
	if c.Verbosity == nil {
		return Normal
	}
	return *c.Verbosity
}

// EffectiveGC reports whether a GC should run between samples.
func (c Config) EffectiveGC() bool {
	return c.GC != nil && *c.GC
}

// EffectiveCI returns the confidence-interval width, defaulting to 0.95.
func (c Config) EffectiveCI() float64 {
	if c.CI == nil {
		return 0.95
	}
	return *c.CI
}

// EffectiveResamples returns the bootstrap resample count, defaulting to
// 100000.
func (c Config) EffectiveResamples() int {
	if c.Resamples == nil {
		return 100000
	}
	return *c.Resamples
}

// EffectiveSamples returns the timing sample count, defaulting to 100.
func (c Config) EffectiveSamples() int {
	if c.Samples == nil {
		return 100
	}
	return *c.Samples
}
