// Package crank is an embeddable micro-benchmark harness. A benchmark
// program declares a tree of named benchmarks and hands control to Main,
// which owns the command line: flag parsing, help/version/list dispatch,
// benchmark selection by name prefix, and the handoff to the measurement
// engine.
//
//	func main() {
//		crank.Main(
//			crank.Group("fib",
//				crank.Bench("fib 10", func(n int) { ... }),
//				crank.Bench("fib 35", func(n int) { ... }),
//			),
//		)
//	}
package crank

import (
	"io"
	"os"
	"path/filepath"

	"github.com/crank-bench/crank/internal/cli"
	"github.com/crank-bench/crank/internal/config"
	"github.com/crank-bench/crank/internal/engine"
)

const version = "0.1.0"

// Benchmark is a node of the benchmark tree: either a leaf with a runner
// or a group of children. Full names are the '/'-joined path of node
// names from the root.
type Benchmark struct {
	name     string
	run      func(n int)
	children []*Benchmark
}

// Bench declares a leaf benchmark. run must execute the measured action
// exactly n times.
func Bench(name string, run func(n int)) *Benchmark {
	return &Benchmark{name: name, run: run}
}

// Group declares a named group of benchmarks.
func Group(name string, children ...*Benchmark) *Benchmark {
	return &Benchmark{name: name, children: children}
}

// Names returns the fully-qualified name of every leaf benchmark, in
// declared order.
func Names(benchmarks []*Benchmark) []string {
	var names []string
	for _, t := range targets(benchmarks) {
		names = append(names, t.Name)
	}
	return names
}

// targets flattens the tree into runnable leaves with full names.
func targets(benchmarks []*Benchmark) []engine.Target {
	var out []engine.Target
	var walk func(prefix string, b *Benchmark)
	walk = func(prefix string, b *Benchmark) {
		name := b.name
		if prefix != "" {
			name = prefix + "/" + b.name
		}
		if b.run != nil {
			out = append(out, engine.Target{Name: name, Run: b.run})
			return
		}
		for _, c := range b.children {
			walk(name, c)
		}
	}
	for _, b := range benchmarks {
		walk("", b)
	}
	return out
}

// Main parses os.Args, dispatches, and exits the process. It does not
// return.
func Main(benchmarks ...*Benchmark) {
	os.Exit(run(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr, benchmarks))
}

// run is Main without the process exit, for tests.
func run(name string, args []string, stdout, stderr io.Writer, benchmarks []*Benchmark) int {
	baseline := config.Default()
	banner := "crank " + version + ", a micro-benchmark harness"
	baseline.Banner = &banner

	app := &cli.App{
		Name:   name,
		Args:   args,
		Stdout: stdout,
		Stderr: stderr,
		Names:  func() []string { return Names(benchmarks) },
		Run: func(match func(string) bool, cfg config.Config) error {
			cal := engine.Calibrate()
			return engine.Run(match, cal, targets(benchmarks), cfg, stdout)
		},
	}
	return app.Execute(baseline)
}
