package prototype

import (
	"math"

	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// Chebyshev1 returns the order-n Chebyshev Type I prototype with rippleDB of
// passband ripple.
//
// With ε = sqrt(10^(ripple/10) - 1) and μ = asinh(1/ε)/n the poles are
// -sinh(μ + i·θ_k). The gain normalizes the DC response to 1 for odd orders
// and to 1/sqrt(1+ε²) (the bottom of the ripple band) for even orders.
func Chebyshev1(n int, rippleDB float64) (zpk.ZPK, error) {
	if err := checkOrder(n); err != nil {
		return zpk.ZPK{}, err
	}

	if err := checkRipple(rippleDB); err != nil {
		return zpk.ZPK{}, err
	}

	eps := math.Sqrt(math.Pow(10, 0.1*rippleDB) - 1)
	mu := math.Asinh(1/eps) / float64(n)

	theta := zpk.Theta(n, true)

	poles := make([]complex128, n)
	neg := complex(1, 0)

	for i, th := range theta {
		poles[i] = minusSinh(complex(mu, 0) + th)
		neg *= -poles[i]
	}

	gain := real(neg)
	if n%2 == 0 {
		gain /= math.Sqrt(1 + eps*eps)
	}

	return zpk.ZPK{
		Zeros: []complex128{},
		Poles: poles,
		Gain:  gain,
	}, nil
}

// Chebyshev2 returns the order-n Chebyshev Type II (inverse Chebyshev)
// prototype with rippleDB of stopband ripple.
//
// The finite zeros lie on the imaginary axis at the reciprocals of
// -sinh(i·θ_k), skipping the zero-frequency angle, so there are n - n%2 of
// them. The poles are the Butterworth poles mapped through
// z ↦ 1/(sinh(μ)·Re z + i·cosh(μ)·Im z). The gain normalizes DC to 1.
func Chebyshev2(n int, rippleDB float64) (zpk.ZPK, error) {
	if err := checkOrder(n); err != nil {
		return zpk.ZPK{}, err
	}

	if err := checkRipple(rippleDB); err != nil {
		return zpk.ZPK{}, err
	}

	rf := 1 / math.Sqrt(math.Pow(10, 0.1*rippleDB)-1)
	mu := math.Asinh(1/rf) / float64(n)
	sinhMu := math.Sinh(mu)
	coshMu := math.Cosh(mu)

	theta := zpk.Theta(n, false)

	zeros := make([]complex128, len(theta))
	for i, th := range theta {
		zeros[i] = 1 / minusSinh(th)
	}

	poles := butterworthPoles(n)
	for i, p := range poles {
		poles[i] = 1 / complex(sinhMu*real(p), coshMu*imag(p))
	}

	den := zpk.Prod(negate(zeros))
	if den == 0 {
		return zpk.ZPK{}, zpk.ErrDegenerateTransform
	}

	return zpk.ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  real(zpk.Prod(negate(poles)) / den),
	}, nil
}

func negate(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = -x
	}

	return out
}
