package engine

import "math"

// kdePointCount is the number of points sampled along a density curve.
const kdePointCount = 128

// kde computes a gaussian kernel density estimate of xs, evaluated at
// kdePointCount evenly spaced points spanning the data plus three
// bandwidths on either side. Bandwidth follows Silverman's rule of thumb.
func kde(xs []float64) (points, density []float64) {
	n := len(xs)
	if n == 0 {
		return nil, nil
	}
	sigma := stddev(xs)
	h := 1.06 * sigma * math.Pow(float64(n), -0.2)
	if h <= 0 {
		// Degenerate sample (all values equal); pick a width that still
		// yields a visible spike.
		h = math.Max(math.Abs(xs[0])*1e-3, 1e-12)
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	lo -= 3 * h
	hi += 3 * h

	points = make([]float64, kdePointCount)
	density = make([]float64, kdePointCount)
	step := (hi - lo) / float64(kdePointCount-1)
	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i := range points {
		p := lo + float64(i)*step
		points[i] = p
		var sum float64
		for _, x := range xs {
			u := (p - x) / h
			sum += math.Exp(-0.5 * u * u)
		}
		density[i] = sum * norm
	}
	return points, density
}
