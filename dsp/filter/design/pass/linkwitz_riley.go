package pass

import (
	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-iir/dsp/filter/iir"
	"github.com/cwbudde/algo-iir/dsp/filter/sos"
	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given order.
//
// An order-2N Linkwitz-Riley filter is an order-N Butterworth filter
// squared: every zero and pole appears twice. The response is -6.02 dB at
// freq. The order must be a positive even integer; nil is returned
// otherwise.
//
// Used with [LinkwitzRileyHP] at the same frequency and order, the two
// outputs sum to an allpass response. For orders ≡ 2 mod 4 the highpass
// must be inverted first (see [LinkwitzRileyHPInverted]).
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return linkwitzRiley(iir.Lowpass, freq, order, sampleRate)
}

// LinkwitzRileyHP designs a highpass Linkwitz-Riley cascade of the given
// order. See [LinkwitzRileyLP].
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return linkwitzRiley(iir.Highpass, freq, order, sampleRate)
}

// LinkwitzRileyHPInverted is [LinkwitzRileyHP] with inverted polarity.
func LinkwitzRileyHPInverted(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	sections := LinkwitzRileyHP(freq, order, sampleRate)
	if sections == nil {
		return nil
	}

	sections[0] = sections[0].Scaled(-1)

	return sections
}

// LinkwitzRileyNeedsHPInvert reports whether the given Linkwitz-Riley order
// needs an inverted highpass for allpass summation: orders ≡ 2 mod 4.
func LinkwitzRileyNeedsHPInvert(order int) bool {
	return order > 0 && order%4 == 2
}

func linkwitzRiley(band iir.Band, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	d, err := iir.New(sampleRate)
	if err != nil {
		return nil
	}

	des, err := d.Design(prototype.Prototype{Type: prototype.TypeButterworth, Order: order / 2}, band, freq)
	if err != nil {
		return nil
	}

	bw := des.ZPK()
	squared := zpk.ZPK{
		Zeros: append(bw.Zeros, bw.Zeros...),
		Poles: append(bw.Poles, bw.Poles...),
		Gain:  bw.Gain * bw.Gain,
	}

	sections, err := sos.FromZPK(squared, sos.FirstSection)
	if err != nil {
		return nil
	}

	return sections
}
