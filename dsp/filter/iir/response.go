package iir

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidLength is returned for an FFT size that is not positive.
var ErrInvalidLength = errors.New("iir: invalid length")

// FrequencyResponse returns bins 0..nfft/2 of the nfft-point DFT of an
// impulse response. The impulse is truncated or zero-padded to nfft; bin k
// sits at k·sampleRate/nfft Hz.
func FrequencyResponse(impulse []float64, nfft int) ([]complex128, error) {
	if nfft <= 0 {
		return nil, fmt.Errorf("%w: fft size %d", ErrInvalidLength, nfft)
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, fmt.Errorf("iir: fft plan: %w", err)
	}

	in := make([]complex128, nfft)
	for i := range min(nfft, len(impulse)) {
		in[i] = complex(impulse[i], 0)
	}

	out := make([]complex128, nfft)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("iir: fft: %w", err)
	}

	return out[:nfft/2+1], nil
}

// MagnitudeResponse returns |h[k]| for every bin.
func MagnitudeResponse(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}

	re := make([]float64, len(h))
	im := make([]float64, len(h))

	for i, c := range h {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(h))
	vecmath.Magnitude(out, re, im)

	return out
}

// MagnitudeDB returns 20·log10 of each magnitude. Zero maps to -Inf.
func MagnitudeDB(mag []float64) []float64 {
	out := make([]float64, len(mag))
	for i, m := range mag {
		out[i] = 20 * math.Log10(m)
	}

	return out
}

// Spectrum returns the one-sided nfft-point magnitude spectrum of an impulse
// response in any sample type.
func Spectrum[F Float](ir []F, nfft int) ([]float64, error) {
	x := make([]float64, len(ir))
	for i, v := range ir {
		x[i] = float64(v)
	}

	h, err := FrequencyResponse(x, nfft)
	if err != nil {
		return nil, err
	}

	return MagnitudeResponse(h), nil
}
