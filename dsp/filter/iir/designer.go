package iir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iir/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-iir/dsp/filter/sos"
	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// Designer produces digital designs at a fixed sample rate.
type Designer struct {
	sampleRate float64
	gainMode   sos.GainMode
}

// Option configures a Designer.
type Option func(*Designer)

// WithGainMode sets the gain mode that [Design.SOS] uses. The default is
// [sos.FirstSection].
func WithGainMode(m sos.GainMode) Option {
	return func(d *Designer) { d.gainMode = m }
}

// New returns a Designer for sampleRate Hz.
func New(sampleRate float64, opts ...Option) (*Designer, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("iir: sample rate %g: %w", sampleRate, zpk.ErrInvalidFrequency)
	}

	d := &Designer{sampleRate: sampleRate}
	for _, o := range opts {
		o(d)
	}

	return d, nil
}

// SampleRate returns the designer's sample rate in Hz.
func (d *Designer) SampleRate() float64 { return d.sampleRate }

// Lowpass designs a lowpass filter from p with its cutoff at cutoff Hz.
func (d *Designer) Lowpass(p prototype.Prototype, cutoff float64) (*Design, error) {
	return d.Design(p, Lowpass, cutoff)
}

// Highpass designs a highpass filter from p with its cutoff at cutoff Hz.
func (d *Designer) Highpass(p prototype.Prototype, cutoff float64) (*Design, error) {
	return d.Design(p, Highpass, cutoff)
}

// Design builds the prototype p and converts it to band at cutoff Hz.
func (d *Designer) Design(p prototype.Prototype, band Band, cutoff float64) (*Design, error) {
	analog, err := p.ZPK()
	if err != nil {
		return nil, err
	}

	digital, err := ToBand(analog, band, d.sampleRate, cutoff)
	if err != nil {
		return nil, err
	}

	return &Design{
		Prototype:  p,
		Band:       band,
		SampleRate: d.sampleRate,
		Cutoff:     cutoff,
		GainMode:   d.gainMode,
		zpk:        digital,
	}, nil
}

// Design is a digital filter in zero-pole-gain form together with the
// parameters it was made from. It is immutable once built.
type Design struct {
	Prototype  prototype.Prototype
	Band       Band
	SampleRate float64
	Cutoff     float64
	GainMode   sos.GainMode

	zpk zpk.ZPK
}

// ZPK returns a copy of the digital zeros, poles and gain.
func (d *Design) ZPK() zpk.ZPK {
	return d.zpk.Clone()
}

// Order returns the filter order.
func (d *Design) Order() int {
	return d.zpk.Order()
}

// Poly realizes the design as a float64 polynomial filter.
func (d *Design) Poly() (*PolyDesign[float64], error) {
	return NewPoly[float64](d)
}

// SOS realizes the design as a float64 section cascade using d.GainMode.
func (d *Design) SOS() (*SOSDesign[float64], error) {
	return NewSOS[float64](d, d.GainMode)
}

// String describes the design, e.g. "butterworth(4) lowpass 1000 Hz @ 48000 Hz".
func (d *Design) String() string {
	return fmt.Sprintf("%v %v %g Hz @ %g Hz", d.Prototype, d.Band, d.Cutoff, d.SampleRate)
}
