package fixed

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
)

// Section holds one quantized biquad. A1 and A2 keep the sign convention of
// [biquad.Coefficients]: y = b0·x + b1·x1 + b2·x2 - a1·y1 - a2·y2.
type Section struct {
	B0, B1, B2 int32
	A1, A2     int32
}

// Cascade runs quantized sections in transposed direct form II.
type Cascade struct {
	format   Format
	sections []Section
	state    [][2]int64
}

// NewCascade quantizes coeffs to f. Every coefficient must be finite and
// representable in f.
func NewCascade(f Format, coeffs []biquad.Coefficients) (*Cascade, error) {
	if f.frac == 0 {
		return nil, fmt.Errorf("%w: zero value", ErrInvalidFormat)
	}

	c := &Cascade{
		format:   f,
		sections: make([]Section, len(coeffs)),
		state:    make([][2]int64, len(coeffs)),
	}

	for i, k := range coeffs {
		for _, v := range [...]float64{k.B0, k.B1, k.B2, k.A1, k.A2} {
			if math.IsNaN(v) || !f.fits(v) {
				return nil, fmt.Errorf("%w: section %d value %g in %v", ErrCoefficientRange, i, v, f)
			}
		}

		c.sections[i] = Section{
			B0: f.FromFloat(k.B0),
			B1: f.FromFloat(k.B1),
			B2: f.FromFloat(k.B2),
			A1: f.FromFloat(k.A1),
			A2: f.FromFloat(k.A2),
		}
	}

	return c, nil
}

// ProcessSample filters one sample through every section. State
// accumulators saturate instead of wrapping when large coefficients meet
// full-scale input.
func (c *Cascade) ProcessSample(x int32) int32 {
	for i := range c.sections {
		k := &c.sections[i]
		s := &c.state[i]

		xi := int64(x)
		y := sat32(c.format.round(addSat(int64(k.B0)*xi, s[0])))
		yi := int64(y)

		s[0] = addSat(addSat(int64(k.B1)*xi, -int64(k.A1)*yi), s[1])
		s[1] = addSat(int64(k.B2)*xi, -int64(k.A2)*yi)
		x = y
	}

	return x
}

// ProcessBlock filters buf in place.
func (c *Cascade) ProcessBlock(buf []int32) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// Reset clears the state of every section.
func (c *Cascade) Reset() {
	clear(c.state)
}

// Format returns the coefficient format.
func (c *Cascade) Format() Format { return c.format }

// NumSections returns the number of sections.
func (c *Cascade) NumSections() int { return len(c.sections) }

// Sections returns a copy of the quantized sections.
func (c *Cascade) Sections() []Section {
	return append([]Section(nil), c.sections...)
}

// Coefficients returns the quantized sections converted back to float64.
func (c *Cascade) Coefficients() []biquad.Coefficients {
	out := make([]biquad.Coefficients, len(c.sections))
	for i, s := range c.sections {
		out[i] = biquad.Coefficients{
			B0: c.format.ToFloat(s.B0),
			B1: c.format.ToFloat(s.B1),
			B2: c.format.ToFloat(s.B2),
			A1: c.format.ToFloat(s.A1),
			A2: c.format.ToFloat(s.A2),
		}
	}

	return out
}
