// Package engine is the measurement collaborator behind the command-line
// core: it calibrates the clock, collects timing samples for each selected
// benchmark, derives bootstrapped mean/stddev estimates, and emits the
// summary CSV rows and plot data the configuration asks for.
package engine

import (
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/crank-bench/crank/internal/config"
)

// Target is one runnable leaf benchmark: a fully-qualified name and a
// function executing n iterations of the measured action.
type Target struct {
	Name string
	Run  func(n int)
}

// Calibration captures what the environment-calibration pass learned
// about the host clock.
type Calibration struct {
	// Resolution is the smallest observable step of the monotonic clock.
	Resolution time.Duration

	// ClockCost is the estimated cost of a single clock read.
	ClockCost time.Duration
}

// Calibrate estimates the clock resolution and per-read cost. It takes no
// arguments and touches no configuration.
func Calibrate() Calibration {
	resolution := time.Duration(1<<62 - 1)
	for i := 0; i < 1000; i++ {
		t1 := time.Now()
		t2 := time.Now()
		for !t2.After(t1) {
			t2 = time.Now()
		}
		if d := t2.Sub(t1); d < resolution {
			resolution = d
		}
	}

	const reads = 100000
	start := time.Now()
	for i := 0; i < reads; i++ {
		_ = time.Now()
	}
	cost := time.Since(start) / reads

	return Calibration{Resolution: resolution, ClockCost: cost}
}

// Result holds everything measured and derived for one benchmark.
type Result struct {
	Name string

	// Iters is the iteration count used for every sample.
	Iters int

	// Times is the per-iteration time of each sample, in seconds.
	Times []float64

	Mean   Estimate
	Stddev Estimate

	// Hist records per-iteration sample times in nanoseconds.
	Hist *hdrhistogram.Histogram
}

// Run measures every target selected by match and reports results
// according to cfg. The summary header, when requested, has already been
// written by the dispatcher; Run only appends rows.
func Run(match func(string) bool, cal Calibration, targets []Target, cfg config.Config, stdout io.Writer) error {
	rep := newReporter(stdout, cfg.EffectiveVerbosity())
	rep.calibration(cal)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var results []*Result
	for _, t := range targets {
		if !match(t.Name) {
			continue
		}
		rep.benchmarking(t.Name)
		res := measure(t, cal, cfg)
		analyze(rng, res, cfg)
		rep.result(res)
		results = append(results, res)
	}

	if cfg.SummaryFile != nil {
		if err := appendSummary(*cfg.SummaryFile, results); err != nil {
			return err
		}
	}
	return emitPlots(cfg, results, rep)
}

// measure collects cfg.Samples timed samples of t. The per-sample
// iteration count is autoscaled first: doubled until one sample comfortably
// exceeds the clock's ability to resolve it.
func measure(t Target, cal Calibration, cfg config.Config) *Result {
	floor := 1000 * cal.Resolution
	if floor < time.Millisecond {
		floor = time.Millisecond
	}

	iters := 1
	for {
		if timeRun(t.Run, iters) >= floor || iters >= 1<<30 {
			break
		}
		iters *= 2
	}

	samples := cfg.EffectiveSamples()
	gc := cfg.EffectiveGC()
	times := make([]float64, 0, samples)
	hist := hdrhistogram.New(1, int64(time.Hour), 3)
	for i := 0; i < samples; i++ {
		if gc {
			runtime.GC()
		}
		elapsed := timeRun(t.Run, iters)
		per := elapsed.Seconds() / float64(iters)
		times = append(times, per)

		ns := int64(per * float64(time.Second))
		if ns < 1 {
			ns = 1
		}
		_ = hist.RecordValue(ns)
	}

	return &Result{Name: t.Name, Iters: iters, Times: times, Hist: hist}
}

func timeRun(run func(n int), iters int) time.Duration {
	start := time.Now()
	run(iters)
	return time.Since(start)
}

// analyze fills in the bootstrapped mean and stddev estimates.
func analyze(rng *rand.Rand, res *Result, cfg config.Config) {
	resamples := cfg.EffectiveResamples()
	ci := cfg.EffectiveCI()
	res.Mean = estimate(rng, res.Times, resamples, ci, mean)
	res.Stddev = estimate(rng, res.Times, resamples, ci, stddev)
}
