package engine

import (
	"math"
	"math/rand"
	"sort"
)

// Estimate is a point estimate with bootstrap confidence bounds.
type Estimate struct {
	Point      float64
	Lower      float64
	Upper      float64
	Confidence float64
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the unbiased sample standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// quantile returns the q-th quantile of sorted xs with linear
// interpolation between order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// bootstrap computes a percentile confidence interval of width ci for
// stat over xs, using the given number of resamples with replacement.
func bootstrap(rng *rand.Rand, xs []float64, resamples int, ci float64, stat func([]float64) float64) (lower, upper float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	stats := make([]float64, resamples)
	scratch := make([]float64, len(xs))
	for i := range stats {
		for j := range scratch {
			scratch[j] = xs[rng.Intn(len(xs))]
		}
		stats[i] = stat(scratch)
	}
	sort.Float64s(stats)
	alpha := 1 - ci
	return quantile(stats, alpha/2), quantile(stats, 1-alpha/2)
}

// estimate bundles a statistic with its bootstrapped bounds.
func estimate(rng *rand.Rand, xs []float64, resamples int, ci float64, stat func([]float64) float64) Estimate {
	lo, hi := bootstrap(rng, xs, resamples, ci, stat)
	return Estimate{Point: stat(xs), Lower: lo, Upper: hi, Confidence: ci}
}
