// Package stats provides the numeric primitives behind dataset repair and
// summary reporting: mean, median, percentile with linear interpolation,
// mode, and Pearson correlation. All functions are pure; undefined results
// (empty input, zero variance) come back as NaN rather than panicking,
// because an empty filtered view is a reachable state upstream.
package stats

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean. NaN for empty input.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Median returns the median value (allocates a copy). NaN for empty input.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n / 2
	if n%2 == 0 {
		return (cp[mid-1] + cp[mid]) / 2
	}
	return cp[mid]
}

// Percentile computes the q-th percentile (q in [0, 100]) using linear
// interpolation between order statistics. NaN for empty input.
func Percentile(x []float64, q float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)

	if q <= 0 {
		return cp[0]
	}
	if q >= 100 {
		return cp[n-1]
	}

	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return cp[lo]
	}
	frac := rank - float64(lo)
	return cp[lo] + frac*(cp[hi]-cp[lo])
}

// MinMax returns the minimum and maximum values. NaN pair for empty input.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max := x[0], x[0]
	for _, v := range x[1:] {
		if v < min {
			min = v
		} else if v > max {
			max = v
		}
	}
	return min, max
}

// Mode returns the most frequent value of a string slice. Ties break toward
// the lexicographically smallest value so repeated runs stay deterministic.
// The second return is false for empty input.
func Mode(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	var best string
	bestCount := -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best, true
}

// Pearson computes the Pearson correlation coefficient of two equal-length
// series. NaN when either series has zero variance or fewer than two points.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return math.NaN()
	}

	meanX, meanY := Mean(x), Mean(y)
	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
