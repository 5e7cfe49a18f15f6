package engine

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/crank-bench/crank/internal/config"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 2.5, want: "2.5 s"},
		{in: 1, want: "1 s"},
		{in: 0.0243, want: "24.3 ms"},
		{in: 1e-3, want: "1 ms"},
		{in: 24.3e-6, want: "24.3 us"},
		{in: 1e-6, want: "1 us"},
		{in: 530e-9, want: "530 ns"},
		{in: 0.5e-9, want: "0.5 ns"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlotFileName(t *testing.T) {
	tests := []struct {
		name string
		kind string
		want string
	}{
		{name: "fib/fib 10", kind: "kde", want: "fib-fib_10-kde.csv"},
		{name: "simple", kind: "timing", want: "simple-timing.csv"},
	}
	for _, tt := range tests {
		if got := plotFileName(tt.name, tt.kind); got != tt.want {
			t.Errorf("plotFileName(%q, %q) = %q, want %q", tt.name, tt.kind, got, tt.want)
		}
	}
}

func TestAppendSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := os.WriteFile(path, []byte("Name,Mean,MeanLB,MeanUB,Stddev,StddevLB,StddevUB\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := &Result{
		Name:   "grp/bench, with comma",
		Mean:   Estimate{Point: 1e-6, Lower: 0.9e-6, Upper: 1.1e-6, Confidence: 0.95},
		Stddev: Estimate{Point: 1e-8, Lower: 0.5e-8, Upper: 2e-8, Confidence: 0.95},
	}
	if err := appendSummary(path, []*Result{res}); err != nil {
		t.Fatalf("appendSummary: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading summary csv back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][0] != "grp/bench, with comma" {
		t.Errorf("name round-trip = %q", rows[1][0])
	}
	if len(rows[1]) != 7 {
		t.Errorf("row has %d fields, want 7", len(rows[1]))
	}
}

func TestReporter_VerbosityGates(t *testing.T) {
	res := &Result{
		Name:   "x",
		Iters:  8,
		Times:  []float64{1e-6, 1.1e-6},
		Mean:   Estimate{Point: 1.05e-6, Lower: 1e-6, Upper: 1.1e-6, Confidence: 0.95},
		Stddev: Estimate{Point: 7e-8, Lower: 5e-8, Upper: 9e-8, Confidence: 0.95},
	}

	var quiet bytes.Buffer
	r := newReporter(&quiet, config.Quiet)
	r.benchmarking("x")
	r.result(res)
	if quiet.Len() != 0 {
		t.Errorf("quiet reporter wrote %q", quiet.String())
	}

	var normal bytes.Buffer
	r = newReporter(&normal, config.Normal)
	r.calibration(Calibration{})
	r.benchmarking("x")
	if got := normal.String(); got != "benchmarking x\n" {
		t.Errorf("normal output = %q, calibration should be verbose-only", got)
	}
}
