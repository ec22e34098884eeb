package utils

import (
	"math"
	"math/rand/v2"
)

// RandomFloat is the default roll source for price multipliers, in [0, 1).
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // price noise, not security critical
}

// BiasedRandom returns a value in [min, max] with two-decimal precision, pulled toward
// the bounds by exponent. exponent 1 is uniform; larger values favour the extremes
// symmetrically. rnd must return values in [0, 1).
//
// The bounds are scaled to hundredths, the shaped value is rounded there, then divided back.
func BiasedRandom(min, max, exponent float64, rnd func() float64) float64 {
	lo := math.Round(min * 100)
	hi := math.Round(max * 100)
	if hi <= lo {
		return lo / 100
	}
	if exponent < 1 {
		exponent = 1
	}

	x := 2*rnd() - 1
	shaped := math.Copysign(math.Pow(math.Abs(x), 1/exponent), x)
	v := lo + (shaped+1)/2*(hi-lo)

	return Clamp(math.Round(v), lo, hi) / 100
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
