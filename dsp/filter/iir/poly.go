package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
	"github.com/cwbudde/algo-iir/internal/polyroot"
)

// Float is the set of sample types a design can be realized in.
type Float interface {
	~float32 | ~float64
}

// PolyDesign holds the transfer function as two polynomials in z^-1:
//
//	H(z) = (b[0] + b[1] z^-1 + ... + b[n] z^-n) / (1 + a[1] z^-1 + ... + a[n] z^-n)
type PolyDesign[F Float] struct {
	b, a []F
}

// NewPoly realizes d as a polynomial filter with sample type F.
func NewPoly[F Float](d *Design) (*PolyDesign[F], error) {
	return PolyFromZPK[F](d.zpk)
}

// PolyFromZPK expands a digital ZPK into numerator and denominator
// polynomials. Missing zeros are taken to sit at the origin, so the
// numerator is padded on the right, as in the SOS realization.
func PolyFromZPK[F Float](z zpk.ZPK) (*PolyDesign[F], error) {
	if err := z.Validate(); err != nil {
		return nil, fmt.Errorf("iir: %w", err)
	}

	n := z.Order()

	num := zpk.RealPoly(z.Zeros, z.Gain)
	den := zpk.RealPoly(z.Poles, 1)

	p := &PolyDesign[F]{
		b: make([]F, n+1),
		a: make([]F, n+1),
	}

	for i, v := range num {
		p.b[i] = F(v)
	}

	for i, v := range den {
		p.a[i] = F(v)
	}

	if !finiteSlice(p.b) || !finiteSlice(p.a) {
		return nil, fmt.Errorf("iir: polynomial coefficients: %w", zpk.ErrDegenerateTransform)
	}

	return p, nil
}

// Order returns the filter order.
func (p *PolyDesign[F]) Order() int {
	return len(p.a) - 1
}

// B returns a copy of the numerator coefficients.
func (p *PolyDesign[F]) B() []F {
	return append([]F(nil), p.b...)
}

// A returns a copy of the denominator coefficients; A()[0] is 1.
func (p *PolyDesign[F]) A() []F {
	return append([]F(nil), p.a...)
}

// Poles returns the roots of the denominator as realized in F.
func (p *PolyDesign[F]) Poles() ([]complex128, error) {
	a := make([]float64, len(p.a))
	for i, v := range p.a {
		a[i] = float64(v)
	}

	return polyroot.Roots(a)
}

// Stable reports whether every pole of the realized denominator lies
// strictly inside the unit circle. Rounding to a narrow F can move poles
// of high-order designs outside; this is the check for that.
func (p *PolyDesign[F]) Stable() bool {
	poles, err := p.Poles()
	if err != nil {
		return false
	}

	for _, q := range poles {
		if cmplx.Abs(q) >= 1 {
			return false
		}
	}

	return true
}

// ImpulseResponse returns the first n output samples for a unit impulse.
func (p *PolyDesign[F]) ImpulseResponse(n int) []F {
	return impulse(p.Instance(), n)
}

// Instance returns a new filter with zeroed state.
func (p *PolyDesign[F]) Instance() *PolyFilter[F] {
	return &PolyFilter[F]{
		design: p,
		s:      make([]F, p.Order()),
	}
}

// PolyFilter runs a PolyDesign in transposed direct form II.
type PolyFilter[F Float] struct {
	design *PolyDesign[F]
	s      []F
}

// Process filters one sample.
func (f *PolyFilter[F]) Process(x F) F {
	b, a, s := f.design.b, f.design.a, f.s
	n := len(s)

	y := b[0]*x + s[0]
	for k := 0; k < n-1; k++ {
		s[k] = b[k+1]*x - a[k+1]*y + s[k+1]
	}

	s[n-1] = b[n]*x - a[n]*y

	return y
}

// ProcessBlock filters buf in place.
func (f *PolyFilter[F]) ProcessBlock(buf []F) {
	for i, x := range buf {
		buf[i] = f.Process(x)
	}
}

// Reset zeroes the delay state.
func (f *PolyFilter[F]) Reset() {
	clear(f.s)
}

// State returns a copy of the delay state.
func (f *PolyFilter[F]) State() []F {
	return append([]F(nil), f.s...)
}

// Design returns the design the filter runs.
func (f *PolyFilter[F]) Design() *PolyDesign[F] {
	return f.design
}

func finiteSlice[F Float](v []F) bool {
	for _, x := range v {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return false
		}
	}

	return true
}

type processor[F Float] interface {
	ProcessBlock(buf []F)
}

func impulse[F Float](p processor[F], n int) []F {
	if n <= 0 {
		return nil
	}

	out := make([]F, n)
	out[0] = 1
	p.ProcessBlock(out)

	return out
}
