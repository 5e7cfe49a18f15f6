package config

import (
	"errors"
	"strconv"
	"strings"
)

// errUnknownPlotType is the single rejection for the whole plot grammar:
// unrecognized keyword, malformed dimensions, or trailing garbage.
var errUnknownPlotType = errors.New("unknown plot type")

// plotKeywords is tried in order; "window" must precede its alias "win" so
// the longer keyword claims the input first.
var plotKeywords = []struct {
	keyword string
	format  PlotFormat
	width   int
	height  int
}{
	{"window", Window, 800, 600},
	{"win", Window, 800, 600},
	{"pdf", PDF, 432, 324},
	{"png", PNG, 800, 600},
	{"svg", SVG, 432, 324},
}

// ParsePlotOutput parses a plot-output specifier: a kind keyword with an
// optional ":WIDTHxHEIGHT" suffix replacing the kind's default dimensions.
// "csv" must be a bare match; it takes no dimensions.
func ParsePlotOutput(s string) (PlotOutput, error) {
	if s == "csv" {
		return PlotOutput{Format: CSV}, nil
	}
	for _, k := range plotKeywords {
		rest, ok := strings.CutPrefix(s, k.keyword)
		if !ok {
			continue
		}
		if rest == "" {
			return PlotOutput{Format: k.format, Width: k.width, Height: k.height}, nil
		}
		if w, h, ok := parseDimensions(rest); ok {
			return PlotOutput{Format: k.format, Width: w, Height: h}, nil
		}
	}
	return PlotOutput{}, errUnknownPlotType
}

// parseDimensions parses a ":WIDTHxHEIGHT" suffix. Both dimensions are
// bare decimal digit runs; signs, spaces, and trailing text all fail.
func parseDimensions(s string) (int, int, bool) {
	s, ok := strings.CutPrefix(s, ":")
	if !ok {
		return 0, 0, false
	}
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, false
	}
	w, err := strconv.ParseUint(ws, 10, 31)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseUint(hs, 10, 31)
	if err != nil {
		return 0, 0, false
	}
	return int(w), int(h), true
}
