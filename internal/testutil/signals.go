// Package testutil provides deterministic test signals and tolerance
// assertions shared by the filter packages' tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// Float matches the sample types the filters run in.
type Float interface {
	~float32 | ~float64
}

// Sine returns amplitude·sin(2π·freqHz·n/sampleRate) for n = 0..length-1.
func Sine[F Float](freqHz, sampleRate, amplitude float64, length int) []F {
	out := make([]F, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = F(amplitude * math.Sin(step*float64(i)))
	}

	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude) from a fixed
// seed, so every run sees the same samples.
func Noise[F Float](seed uint64, amplitude float64, length int) []F {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	out := make([]F, length)
	for i := range out {
		out[i] = F((rng.Float64()*2 - 1) * amplitude)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos gives zeros.
func Impulse[F Float](length, pos int) []F {
	out := make([]F, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns a constant signal.
func DC[F Float](value F, length int) []F {
	out := make([]F, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Convert copies src into a new slice of another sample type.
func Convert[To, From Float](src []From) []To {
	out := make([]To, len(src))
	for i, v := range src {
		out[i] = To(v)
	}

	return out
}
