package iir

import (
	"fmt"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/sos"
	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// Section is one second-order section realized in F.
type Section[F Float] struct {
	B0, B1, B2 F
	A1, A2     F
}

// SectionState is the delay state of one section.
type SectionState[F Float] struct {
	Y1, Y2 F
}

// SOSDesign is a cascade of second-order sections.
type SOSDesign[F Float] struct {
	sections []Section[F]
	coeffs   []biquad.Coefficients
	order    int
	mode     sos.GainMode
}

// NewSOS realizes d as a section cascade with sample type F.
func NewSOS[F Float](d *Design, mode sos.GainMode) (*SOSDesign[F], error) {
	return SOSFromZPK[F](d.zpk, mode)
}

// SOSFromZPK pairs the zeros and poles of a digital ZPK into sections.
// The cascade has ⌈order/2⌉ sections.
func SOSFromZPK[F Float](z zpk.ZPK, mode sos.GainMode) (*SOSDesign[F], error) {
	coeffs, err := sos.FromZPK(z, mode)
	if err != nil {
		return nil, fmt.Errorf("iir: %w", err)
	}

	d := &SOSDesign[F]{
		sections: make([]Section[F], len(coeffs)),
		coeffs:   coeffs,
		order:    z.Order(),
		mode:     mode,
	}

	for i, c := range coeffs {
		s := Section[F]{B0: F(c.B0), B1: F(c.B1), B2: F(c.B2), A1: F(c.A1), A2: F(c.A2)}
		if !finiteSlice([]F{s.B0, s.B1, s.B2, s.A1, s.A2}) {
			return nil, fmt.Errorf("iir: section %d: %w", i, zpk.ErrDegenerateTransform)
		}

		d.sections[i] = s
	}

	return d, nil
}

// Order returns the order of the design the cascade was built from.
func (d *SOSDesign[F]) Order() int { return d.order }

// NumSections returns the number of sections.
func (d *SOSDesign[F]) NumSections() int { return len(d.sections) }

// GainMode returns the mode the gain was assigned with.
func (d *SOSDesign[F]) GainMode() sos.GainMode { return d.mode }

// Sections returns a copy of the sections in execution order.
func (d *SOSDesign[F]) Sections() []Section[F] {
	return append([]Section[F](nil), d.sections...)
}

// Coefficients returns the sections at float64 precision, before rounding
// to F.
func (d *SOSDesign[F]) Coefficients() []biquad.Coefficients {
	return append([]biquad.Coefficients(nil), d.coeffs...)
}

// Chain returns a float64 biquad cascade with fresh state running the
// same sections.
func (d *SOSDesign[F]) Chain() *biquad.Chain {
	return biquad.NewChain(d.coeffs)
}

// Stable reports whether every section has both poles inside the unit
// circle.
func (d *SOSDesign[F]) Stable() bool {
	for i := range d.sections {
		s := d.sections[i]
		c := biquad.Coefficients{A1: float64(s.A1), A2: float64(s.A2)}

		if !c.Stable() {
			return false
		}
	}

	return true
}

// Response returns the cascade's complex response at freqHz.
func (d *SOSDesign[F]) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range d.coeffs {
		h *= d.coeffs[i].Response(freqHz, sampleRate)
	}

	return h
}

// ImpulseResponse returns the first n output samples for a unit impulse.
func (d *SOSDesign[F]) ImpulseResponse(n int) []F {
	return impulse(d.Instance(), n)
}

// Instance returns a new filter with zeroed state.
func (d *SOSDesign[F]) Instance() *SOSFilter[F] {
	return &SOSFilter[F]{
		design: d,
		state:  make([]SectionState[F], len(d.sections)),
	}
}

// SOSFilter runs an SOSDesign, one section after another.
type SOSFilter[F Float] struct {
	design *SOSDesign[F]
	state  []SectionState[F]
}

// Process filters one sample.
func (f *SOSFilter[F]) Process(x F) F {
	for i := range f.design.sections {
		c := &f.design.sections[i]
		s := &f.state[i]

		y := c.B0*x + s.Y1
		s.Y1 = c.B1*x - c.A1*y + s.Y2
		s.Y2 = c.B2*x - c.A2*y
		x = y
	}

	return x
}

// ProcessBlock filters buf in place. float64 buffers run through the
// biquad block kernels.
func (f *SOSFilter[F]) ProcessBlock(buf []F) {
	if b, ok := any(buf).([]float64); ok {
		f.processBlock64(b)
		return
	}

	for i, x := range buf {
		buf[i] = f.Process(x)
	}
}

func (f *SOSFilter[F]) processBlock64(buf []float64) {
	for i := range f.design.coeffs {
		st := &f.state[i]

		sec := biquad.Section{Coefficients: f.design.coeffs[i]}
		sec.SetState([2]float64{float64(st.Y1), float64(st.Y2)})
		sec.ProcessBlock(buf)

		s := sec.State()
		st.Y1, st.Y2 = F(s[0]), F(s[1])
	}
}

// Reset zeroes every section's state.
func (f *SOSFilter[F]) Reset() {
	clear(f.state)
}

// State returns a copy of the per-section state.
func (f *SOSFilter[F]) State() []SectionState[F] {
	return append([]SectionState[F](nil), f.state...)
}

// Design returns the design the filter runs.
func (f *SOSFilter[F]) Design() *SOSDesign[F] {
	return f.design
}
