package iir

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// ErrUnknownBand is returned for a band other than Lowpass or Highpass.
var ErrUnknownBand = errors.New("iir: unknown band")

// Band selects the response shape.
type Band int

const (
	// Lowpass passes frequencies below the cutoff.
	Lowpass Band = iota
	// Highpass passes frequencies above the cutoff.
	Highpass
)

// String returns "lowpass" or "highpass".
func (b Band) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// ParseBand accepts "lowpass"/"lp" and "highpass"/"hp".
func ParseBand(name string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lowpass", "lp":
		return Lowpass, nil
	case "highpass", "hp":
		return Highpass, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBand, name)
	}
}

// ToBand converts an analog prototype into a digital filter with its -3 dB
// point (or ripple edge) at cutoff Hz.
//
// The cutoff is normalized to the Nyquist frequency, pre-warped for a
// bilinear transform at fs = 2, moved to the band and discretized. Inputs
// must satisfy sampleRate > 0 and 0 < cutoff < sampleRate/2.
func ToBand(proto zpk.ZPK, band Band, sampleRate, cutoff float64) (zpk.ZPK, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return zpk.ZPK{}, fmt.Errorf("iir: sample rate %g: %w", sampleRate, zpk.ErrInvalidFrequency)
	}

	if !(cutoff > 0) || !(cutoff < sampleRate/2) {
		return zpk.ZPK{}, fmt.Errorf("iir: cutoff %g Hz at %g Hz: %w", cutoff, sampleRate, zpk.ErrInvalidFrequency)
	}

	const fs = 2

	w, err := zpk.WarpFrequency(2*cutoff/sampleRate, fs)
	if err != nil {
		return zpk.ZPK{}, fmt.Errorf("iir: warp: %w", err)
	}

	var analog zpk.ZPK

	switch band {
	case Lowpass:
		analog, err = zpk.Lowpass(proto, w)
	case Highpass:
		analog, err = zpk.Highpass(proto, w)
	default:
		return zpk.ZPK{}, fmt.Errorf("%w: %v", ErrUnknownBand, band)
	}

	if err != nil {
		return zpk.ZPK{}, fmt.Errorf("iir: %v: %w", band, err)
	}

	digital, err := zpk.Bilinear(analog, fs)
	if err != nil {
		return zpk.ZPK{}, fmt.Errorf("iir: bilinear: %w", err)
	}

	return digital, nil
}
