package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func magChain(c *biquad.Chain, freq, sr float64) float64 {
	return cmplx.Abs(c.Response(freq, sr))
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()

	v := []float64{c.B0, c.B1, c.B2, c.A1, c.A2}
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			t.Fatalf("invalid coefficient[%d]=%v", i, v[i])
		}
	}
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()

	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			t.Fatalf("unstable pole |p|=%v coeff=%#v", cmplx.Abs(p), c)
		}
	}
}

// bandSpan returns the max-min spread in dB of the response over [f0, f1].
func bandSpan(c *biquad.Chain, f0, f1, step, sr float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for f := f0; f <= f1; f += step {
		db := c.MagnitudeDB(f, sr)
		lo = math.Min(lo, db)
		hi = math.Max(hi, db)
	}

	return hi - lo
}

// monotonic reports whether the magnitude only falls (or only rises) over
// [f0, f1].
func monotonic(c *biquad.Chain, f0, f1, step, sr float64, falling bool) bool {
	prev := magChain(c, f0, sr)
	for f := f0 + step; f <= f1; f += step {
		m := magChain(c, f, sr)
		if falling && m > prev*(1+1e-12) || !falling && m < prev*(1-1e-12) {
			return false
		}

		prev = m
	}

	return true
}
