// Package prototype generates normalized analog lowpass prototypes in
// zero-pole-gain form.
//
// Every generator returns a [zpk.ZPK] with its cutoff at 1 rad/s:
//
//   - [Butterworth]: maximally flat passband, poles on the unit circle.
//   - [Chebyshev1]: equiripple passband with the given ripple in dB.
//   - [Chebyshev2]: equiripple stopband, finite zeros on the imaginary axis.
//   - [Bessel]: maximally flat group delay, phase-normalized poles.
//
// The result is denormalized and discretized by dsp/filter/zpk (or all at
// once by dsp/filter/iir).
package prototype
