package pass

import (
	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-iir/dsp/filter/iir"
)

// Design builds an order-n cascade of family t at freq Hz. rippleDB is the
// passband ripple for Chebyshev I and the stopband attenuation for
// Chebyshev II; other families ignore it.
func Design(t prototype.Type, band iir.Band, freq float64, order int, rippleDB, sampleRate float64) ([]biquad.Coefficients, error) {
	d, err := iir.New(sampleRate)
	if err != nil {
		return nil, err
	}

	des, err := d.Design(prototype.Prototype{Type: t, Order: order, RippleDB: rippleDB}, band, freq)
	if err != nil {
		return nil, err
	}

	c, err := des.SOS()
	if err != nil {
		return nil, err
	}

	return c.Coefficients(), nil
}

func orNil(t prototype.Type, band iir.Band, freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	s, err := Design(t, band, freq, order, rippleDB, sampleRate)
	if err != nil {
		return nil
	}

	return s
}

// ButterworthLP designs a lowpass Butterworth cascade with -3 dB at freq.
//
// For odd orders one section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeButterworth, iir.Lowpass, freq, order, 0, sampleRate)
}

// ButterworthHP designs a highpass Butterworth cascade with -3 dB at freq.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeButterworth, iir.Highpass, freq, order, 0, sampleRate)
}

// Chebyshev1LP designs a lowpass Chebyshev Type I cascade. The passband
// ripples by rippleDB and the response is -rippleDB at freq.
func Chebyshev1LP(freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeChebyshev1, iir.Lowpass, freq, order, rippleDB, sampleRate)
}

// Chebyshev1HP designs a highpass Chebyshev Type I cascade.
func Chebyshev1HP(freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeChebyshev1, iir.Highpass, freq, order, rippleDB, sampleRate)
}

// Chebyshev2LP designs a lowpass Chebyshev Type II (inverse Chebyshev)
// cascade. The passband is maximally flat and the stopband, which starts at
// freq, stays at least stopbandDB down.
func Chebyshev2LP(freq float64, order int, stopbandDB, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeChebyshev2, iir.Lowpass, freq, order, stopbandDB, sampleRate)
}

// Chebyshev2HP designs a highpass Chebyshev Type II cascade.
func Chebyshev2HP(freq float64, order int, stopbandDB, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeChebyshev2, iir.Highpass, freq, order, stopbandDB, sampleRate)
}

// BesselLP designs a lowpass Bessel (Thomson) cascade with maximally flat
// group delay. The prototype is phase normalized, so the phase at freq is
// -order·π/4 rather than the magnitude being -3 dB there. Orders 1 to
// [prototype.MaxBesselOrder] are supported.
func BesselLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeBessel, iir.Lowpass, freq, order, 0, sampleRate)
}

// BesselHP designs a highpass Bessel (Thomson) cascade.
func BesselHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return orNil(prototype.TypeBessel, iir.Highpass, freq, order, 0, sampleRate)
}
