package biquad

import (
	"errors"
	"fmt"
	"math"
	"sync"

	archregistry "github.com/cwbudde/algo-iir/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// ErrInvalidSection is returned by [FromPolynomials] for coefficient lists
// that do not describe a second-order section.
var ErrInvalidSection = errors.New("biquad: invalid section")

// Coefficients holds one second-order section with a0 normalized to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// Processing uses Direct Form II Transposed:
//
//	y  = B0*x + s1
//	s1 = B1*x - A1*y + s2
//	s2 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// FromPolynomials builds a section from numerator b and denominator a given
// in descending powers of z (b[0] multiplies z^0 after normalization). Both
// may have up to three entries; shorter lists describe first-order or
// constant terms and are right-padded with zeros. The result is normalized
// so that a[0] becomes 1.
func FromPolynomials(b, a []float64) (Coefficients, error) {
	if len(b) == 0 || len(b) > 3 || len(a) == 0 || len(a) > 3 {
		return Coefficients{}, fmt.Errorf("%w: %d numerator and %d denominator terms",
			ErrInvalidSection, len(b), len(a))
	}

	a0 := a[0]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}, fmt.Errorf("%w: leading denominator %g", ErrInvalidSection, a0)
	}

	var bb, aa [3]float64
	copy(bb[:], b)
	copy(aa[:], a)

	c := Coefficients{
		B0: bb[0] / a0,
		B1: bb[1] / a0,
		B2: bb[2] / a0,
		A1: aa[1] / a0,
		A2: aa[2] / a0,
	}

	if !c.finite() {
		return Coefficients{}, fmt.Errorf("%w: non-finite coefficient", ErrInvalidSection)
	}

	return c, nil
}

// Scaled returns c with its numerator multiplied by g.
func (c Coefficients) Scaled(g float64) Coefficients {
	c.B0 *= g
	c.B1 *= g
	c.B2 *= g

	return c
}

func (c Coefficients) finite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func (c Coefficients) kernel() archregistry.Coefficients {
	return archregistry.Coefficients{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2}
}

// Section is one biquad with its two delay elements.
type Section struct {
	Coefficients

	s1, s2 float64
}

var (
	blockKernel     archregistry.KernelFn
	blockKernelName string
	blockKernelOnce sync.Once
)

// NewSection returns a Section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.s1
	s.s1 = s.B1*x - s.A1*y + s.s2
	s.s2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place using the fastest kernel the CPU
// supports. It does not allocate.
func (s *Section) ProcessBlock(buf []float64) {
	blockKernelOnce.Do(selectKernel)

	s.s1, s.s2 = blockKernel(s.kernel(), s.s1, s.s2, buf)
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	n := copy(dst, src)
	s.ProcessBlock(dst[:n])
}

// Reset clears the delay line.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}

// State returns the delay line [s1, s2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.s1, s.s2}
}

// SetState restores a delay line saved with State.
func (s *Section) SetState(state [2]float64) {
	s.s1, s.s2 = state[0], state[1]
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	blockKernelOnce.Do(selectKernel)

	return blockKernelName
}

func selectKernel() {
	k := archregistry.Global.Lookup(cpu.DetectFeatures())
	if k == nil || k.Process == nil {
		panic("biquad: no block kernel registered")
	}

	blockKernel = k.Process
	blockKernelName = k.Name
}
