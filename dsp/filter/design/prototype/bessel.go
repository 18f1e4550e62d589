package prototype

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
	"github.com/cwbudde/algo-iir/internal/polyroot"
)

// MaxBesselOrder is the highest order [Bessel] supports.
const MaxBesselOrder = 25

// besselSnapTol is the relative tolerance used to snap computed roots onto
// the real axis and to make conjugate pairs exact.
const besselSnapTol = 1e-9

var besselCache [MaxBesselOrder + 1]struct {
	once  sync.Once
	poles []complex128
	err   error
}

// Bessel returns the order-n Bessel-Thomson prototype, normalized so that
// the phase response reaches half its asymptotic value at 1 rad/s (the
// "phase" normalization). The high-frequency asymptote then matches the
// Butterworth prototype of the same order.
//
// Poles are ordered by descending imaginary part. There are no finite zeros
// and the gain is 1, which gives unit DC gain. Orders above
// [MaxBesselOrder] return [zpk.ErrUnsupportedOrder].
func Bessel(n int) (zpk.ZPK, error) {
	if err := checkOrder(n); err != nil {
		return zpk.ZPK{}, err
	}

	if n > MaxBesselOrder {
		return zpk.ZPK{}, fmt.Errorf("prototype: bessel order %d (max %d): %w",
			n, MaxBesselOrder, zpk.ErrUnsupportedOrder)
	}

	entry := &besselCache[n]
	entry.once.Do(func() {
		entry.poles, entry.err = besselPoles(n)
	})

	if entry.err != nil {
		return zpk.ZPK{}, entry.err
	}

	return zpk.New(nil, entry.poles, 1), nil
}

// besselPoles finds the roots of the reverse Bessel polynomial
//
//	θ_n(s) = Σ a_k s^k,  a_k = (2n-k)! / (2^(n-k) k! (n-k)!)
//
// after substituting s = w·q with w = a_0^(1/n). The substituted polynomial
// divided by a_0 is monic with unit constant term, so its roots have unit
// product and the coefficients stay moderate up to high orders.
func besselPoles(n int) ([]complex128, error) {
	logA0 := logBesselCoeff(n, 0)
	logW := logA0 / float64(n)

	// Descending powers: c[i] multiplies q^(n-i).
	c := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		c[n-k] = math.Exp(logBesselCoeff(n, k) + float64(k)*logW - logA0)
	}

	roots, err := polyroot.Roots(c)
	if err != nil {
		return nil, fmt.Errorf("prototype: bessel order %d: %w", n, err)
	}

	roots, err = polyroot.Canonicalize(roots, besselSnapTol)
	if err != nil {
		return nil, fmt.Errorf("prototype: bessel order %d: %w", n, err)
	}

	if zpk.CountReal(roots) != n%2 {
		return nil, fmt.Errorf("prototype: bessel order %d: %w", n, zpk.ErrDegenerateTransform)
	}

	for _, r := range roots {
		if real(r) >= 0 {
			return nil, fmt.Errorf("prototype: bessel order %d: %w", n, zpk.ErrDegenerateTransform)
		}
	}

	slices.SortFunc(roots, func(a, b complex128) int {
		if c := cmp.Compare(imag(b), imag(a)); c != 0 {
			return c
		}

		return cmp.Compare(real(a), real(b))
	})

	return roots, nil
}

// logBesselCoeff returns ln a_k of the order-n reverse Bessel polynomial.
func logBesselCoeff(n, k int) float64 {
	return lgamma(2*n-k+1) - float64(n-k)*math.Ln2 - lgamma(k+1) - lgamma(n-k+1)
}

func lgamma(x int) float64 {
	v, _ := math.Lgamma(float64(x))
	return v
}
