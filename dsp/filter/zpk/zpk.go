package zpk

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrInvalidOrder is returned when a filter order is zero or negative.
	ErrInvalidOrder = errors.New("zpk: invalid filter order")

	// ErrUnsupportedOrder is returned when a prototype has no definition for
	// the requested order (Bessel orders outside the pole table).
	ErrUnsupportedOrder = errors.New("zpk: unsupported filter order")

	// ErrInvalidRipple is returned for a non-positive or non-finite ripple.
	ErrInvalidRipple = errors.New("zpk: invalid ripple")

	// ErrDegenerateTransform is returned when a transform would divide by a
	// (near-)zero denominator or produce a non-finite value.
	ErrDegenerateTransform = errors.New("zpk: degenerate transform")

	// ErrInvalidFrequency is returned for a non-positive sample rate or a
	// cutoff outside (0, sampleRate/2).
	ErrInvalidFrequency = errors.New("zpk: invalid frequency")

	// ErrImproper is returned when a ZPK has more zeros than poles.
	ErrImproper = errors.New("zpk: more zeros than poles")
)

// tiny is the magnitude below which a denominator is treated as zero.
const tiny = 1e-300

// ZPK is a transfer function in zero-pole-gain form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i])
//
// For a real-coefficient filter non-real zeros and poles occur in conjugate
// pairs. A ZPK is treated as an immutable value.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// New returns a ZPK holding copies of zeros and poles.
func New(zeros, poles []complex128, gain float64) ZPK {
	return ZPK{
		Zeros: clone(zeros),
		Poles: clone(poles),
		Gain:  gain,
	}
}

// Order returns the filter order, which is the number of poles.
func (z ZPK) Order() int {
	return len(z.Poles)
}

// Clone returns a deep copy of z.
func (z ZPK) Clone() ZPK {
	return New(z.Zeros, z.Poles, z.Gain)
}

// Even pads zeros and poles with one root at the origin each when their
// count is odd, so both can be grouped into pairs.
func (z ZPK) Even() ZPK {
	return ZPK{
		Zeros: padOdd(z.Zeros),
		Poles: padOdd(z.Poles),
		Gain:  z.Gain,
	}
}

// Validate checks that z is proper, non-empty and finite.
func (z ZPK) Validate() error {
	if len(z.Poles) == 0 {
		return ErrInvalidOrder
	}

	if len(z.Zeros) > len(z.Poles) {
		return ErrImproper
	}

	if !finite(z.Gain) || !allFinite(z.Zeros) || !allFinite(z.Poles) {
		return ErrDegenerateTransform
	}

	return nil
}

// IsReal reports whether v has an imaginary part of exactly zero.
func IsReal(v complex128) bool {
	return imag(v) == 0
}

// Norm returns |v|², which is cheaper than cmplx.Abs.
func Norm(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}

// UnitDistance returns |1 - |v|²|, a cheap measure of how close v lies to
// the unit circle.
func UnitDistance(v complex128) float64 {
	return math.Abs(1 - Norm(v))
}

// CountReal returns the number of real entries in roots.
func CountReal(roots []complex128) int {
	n := 0
	for _, r := range roots {
		if IsReal(r) {
			n++
		}
	}

	return n
}

func clone(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	copy(out, v)

	return out
}

func padOdd(v []complex128) []complex128 {
	out := make([]complex128, len(v), len(v)+len(v)%2)
	copy(out, v)

	if len(v)%2 != 0 {
		out = append(out, 0)
	}

	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func allFinite(v []complex128) bool {
	for _, c := range v {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}

	return true
}
