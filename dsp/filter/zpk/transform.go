package zpk

import (
	"math"
	"math/cmplx"
)

// Theta returns the purely imaginary prototype angles i·π·(2k+1-n)/(2n) for
// k = 0..n-1. These are the arguments used to place Butterworth and
// Chebyshev poles symmetrically around the negative real axis.
//
// With includeZero false and an odd n the zero-frequency angle in the middle
// is skipped, leaving n-1 angles. Chebyshev Type II uses this variant for its
// finite zeros.
func Theta(n int, includeZero bool) []complex128 {
	if n <= 0 {
		return nil
	}

	removeZero := !includeZero && n%2 != 0

	m := n
	if removeZero {
		m--
	}

	out := make([]complex128, m)
	for i := range out {
		k := i
		if removeZero && i >= n/2 {
			k++
		}

		index := 2*k + 1 - n
		out[i] = complex(0, math.Pi*float64(index)/float64(2*n))
	}

	return out
}

// WarpFrequency pre-warps the cutoff f at sample rate fs for the bilinear
// transform: 2·fs·tan(π·f/fs).
func WarpFrequency(f, fs float64) (float64, error) {
	if !finite(f) || !finite(fs) || math.Abs(fs) < tiny {
		return 0, ErrDegenerateTransform
	}

	arg := math.Pi * f / fs
	if math.Abs(math.Cos(arg)) < 1e-12 {
		return 0, ErrDegenerateTransform
	}

	w := 2 * fs * math.Tan(arg)
	if !finite(w) {
		return 0, ErrDegenerateTransform
	}

	return w, nil
}

// Lowpass denormalizes a unit-cutoff prototype to cutoff f (rad/s): zeros and
// poles are scaled by f and the gain by f^(poles-zeros).
func Lowpass(z ZPK, f float64) (ZPK, error) {
	if err := z.Validate(); err != nil {
		return ZPK{}, err
	}

	if !finite(f) || f <= 0 {
		return ZPK{}, ErrDegenerateTransform
	}

	scale := complex(f, 0)

	out := ZPK{
		Zeros: make([]complex128, len(z.Zeros)),
		Poles: make([]complex128, len(z.Poles)),
		Gain:  z.Gain * math.Pow(f, float64(len(z.Poles)-len(z.Zeros))),
	}

	for i, v := range z.Zeros {
		out.Zeros[i] = scale * v
	}

	for i, v := range z.Poles {
		out.Poles[i] = scale * v
	}

	return out, checkFinite(out)
}

// Highpass transforms a unit-cutoff lowpass prototype into a highpass with
// cutoff f (rad/s). Every root r maps to f/r. Missing zeros are added at the
// origin so the result keeps its full degree.
func Highpass(z ZPK, f float64) (ZPK, error) {
	if err := z.Validate(); err != nil {
		return ZPK{}, err
	}

	if !finite(f) || f <= 0 {
		return ZPK{}, ErrDegenerateTransform
	}

	scale := complex(f, 0)
	np := len(z.Poles)

	out := ZPK{
		Zeros: make([]complex128, np),
		Poles: make([]complex128, np),
	}

	for i, v := range z.Zeros {
		if cmplx.Abs(v) < tiny {
			return ZPK{}, ErrDegenerateTransform
		}

		out.Zeros[i] = scale / v
	}

	for i, v := range z.Poles {
		if cmplx.Abs(v) < tiny {
			return ZPK{}, ErrDegenerateTransform
		}

		out.Poles[i] = scale / v
	}

	den := prodNeg(z.Poles)
	if cmplx.Abs(den) < tiny {
		return ZPK{}, ErrDegenerateTransform
	}

	out.Gain = z.Gain * real(prodNeg(z.Zeros)/den)

	return out, checkFinite(out)
}

// Bilinear maps an analog ZPK into the z-plane with the bilinear transform
// at sample rate fs: s ↦ (2·fs + s)/(2·fs - s). Missing zeros are placed at
// z = -1 so numerator and denominator have equal degree.
//
// If every input pole has a negative real part, every output pole lies
// strictly inside the unit circle.
func Bilinear(z ZPK, fs float64) (ZPK, error) {
	if err := z.Validate(); err != nil {
		return ZPK{}, err
	}

	if !finite(fs) || fs <= 0 {
		return ZPK{}, ErrDegenerateTransform
	}

	fs2 := complex(2*fs, 0)
	np := len(z.Poles)

	out := ZPK{
		Zeros: make([]complex128, np),
		Poles: make([]complex128, np),
	}

	num := complex(1, 0)
	for i, v := range z.Zeros {
		d := fs2 - v
		if cmplx.Abs(d) < tiny {
			return ZPK{}, ErrDegenerateTransform
		}

		out.Zeros[i] = (fs2 + v) / d
		num *= d
	}

	for i := len(z.Zeros); i < np; i++ {
		out.Zeros[i] = -1
	}

	den := complex(1, 0)
	for i, v := range z.Poles {
		d := fs2 - v
		if cmplx.Abs(d) < tiny {
			return ZPK{}, ErrDegenerateTransform
		}

		out.Poles[i] = (fs2 + v) / d
		den *= d
	}

	out.Gain = z.Gain * real(num/den)

	return out, checkFinite(out)
}

// prodNeg returns prod(-v[i]); an empty product is 1.
func prodNeg(v []complex128) complex128 {
	p := complex(1, 0)
	for _, x := range v {
		p *= -x
	}

	return p
}

func checkFinite(z ZPK) error {
	if !finite(z.Gain) || !allFinite(z.Zeros) || !allFinite(z.Poles) {
		return ErrDegenerateTransform
	}

	return nil
}
