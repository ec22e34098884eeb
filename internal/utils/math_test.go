package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixed(v float64) func() float64 { return func() float64 { return v } }

// TestBiasedRandom verifies the shaped multiplier curve
func TestBiasedRandom(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		exponent float64
		roll     float64
		expected float64
	}{
		{name: "lowest roll hits min", min: 0.8, max: 1.2, exponent: 2, roll: 0, expected: 0.8},
		{name: "middle roll hits midpoint", min: 0.8, max: 1.2, exponent: 2, roll: 0.5, expected: 1.0},
		{name: "uniform quarter roll", min: 0.8, max: 1.2, exponent: 1, roll: 0.25, expected: 0.9},
		// x = -0.5, |x|^(1/2) = 0.7071 → 0.8 + 0.1464*0.4 → 0.86
		{name: "bias pushes quarter roll toward min", min: 0.8, max: 1.2, exponent: 2, roll: 0.25, expected: 0.86},
		{name: "bias pushes three-quarter roll toward max", min: 0.8, max: 1.2, exponent: 2, roll: 0.75, expected: 1.14},
		{name: "degenerate range", min: 1, max: 1, exponent: 2, roll: 0.9, expected: 1},
		{name: "inverted range returns min", min: 1.5, max: 1.0, exponent: 2, roll: 0.9, expected: 1.5},
		{name: "exponent below one treated as uniform", min: 0, max: 1, exponent: 0, roll: 0.25, expected: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BiasedRandom(tt.min, tt.max, tt.exponent, fixed(tt.roll))
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestBiasedRandom_StaysInBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := BiasedRandom(0.95, 1.1, 3, RandomFloat)
		assert.GreaterOrEqual(t, v, 0.95)
		assert.LessOrEqual(t, v, 1.1)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.01, Clamp(0, 0.01, 1))
	assert.Equal(t, 1.0, Clamp(3, 0.01, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0.01, 1))
}
