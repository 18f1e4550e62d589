package pass

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-iir/dsp/filter/iir"
	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

type designFn func(freq float64, order int, sr float64) []biquad.Coefficients

func families() map[string]designFn {
	return map[string]designFn{
		"ButterworthLP": ButterworthLP,
		"ButterworthHP": ButterworthHP,
		"Chebyshev1LP":  func(f float64, n int, sr float64) []biquad.Coefficients { return Chebyshev1LP(f, n, 1, sr) },
		"Chebyshev1HP":  func(f float64, n int, sr float64) []biquad.Coefficients { return Chebyshev1HP(f, n, 1, sr) },
		"Chebyshev2LP":  func(f float64, n int, sr float64) []biquad.Coefficients { return Chebyshev2LP(f, n, 40, sr) },
		"Chebyshev2HP":  func(f float64, n int, sr float64) []biquad.Coefficients { return Chebyshev2HP(f, n, 40, sr) },
		"BesselLP":      BesselLP,
		"BesselHP":      BesselHP,
	}
}

func TestSectionCount(t *testing.T) {
	for name, fn := range families() {
		for order := 1; order <= 10; order++ {
			got := fn(1000, order, 48000)
			if want := (order + 1) / 2; len(got) != want {
				t.Fatalf("%s order %d: sections=%d, want %d", name, order, len(got), want)
			}
		}
	}
}

func TestOddOrderHasOneSinglePoleSection(t *testing.T) {
	for name, fn := range families() {
		for _, order := range []int{1, 2, 3, 4, 5, 7} {
			n := 0
			for _, s := range fn(2000, order, 48000) {
				if s.A2 == 0 {
					n++
				}
			}

			if want := order % 2; n != want {
				t.Fatalf("%s order %d: %d single-pole sections, want %d", name, order, n, want)
			}
		}
	}
}

func TestAllSectionsStableAndFinite(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000, 192000} {
		for name, fn := range families() {
			for _, freq := range []float64{40, 1000, 10000, 0.45 * sr} {
				for order := 1; order <= 10; order++ {
					for _, s := range fn(freq, order, sr) {
						assertFiniteCoefficients(t, s)
						assertStableSection(t, s)
					}

					if fn(freq, order, sr) == nil {
						t.Fatalf("%s sr=%g freq=%g order=%d: nil design", name, sr, freq, order)
					}
				}
			}
		}
	}
}

func TestInvalidInputs(t *testing.T) {
	for name, fn := range families() {
		for _, tc := range []struct {
			freq, sr float64
			order    int
		}{
			{1000, 48000, 0},
			{1000, 48000, -1},
			{0, 48000, 2},
			{24000, 48000, 2},
			{1000, 0, 2},
			{math.NaN(), 48000, 2},
		} {
			if got := fn(tc.freq, tc.order, tc.sr); got != nil {
				t.Fatalf("%s %+v: expected nil, got %d sections", name, tc, len(got))
			}
		}
	}

	if got := Chebyshev1LP(1000, 4, 0, 48000); got != nil {
		t.Fatal("expected nil for zero ripple")
	}

	if got := BesselLP(1000, prototype.MaxBesselOrder+1, 48000); got != nil {
		t.Fatal("expected nil above the Bessel order limit")
	}
}

func TestDesign_Errors(t *testing.T) {
	_, err := Design(prototype.TypeButterworth, iir.Lowpass, 1000, 4, 0, -1)
	if !errors.Is(err, zpk.ErrInvalidFrequency) {
		t.Fatalf("err=%v, want ErrInvalidFrequency", err)
	}

	_, err = Design(prototype.TypeChebyshev2, iir.Highpass, 1000, 4, -3, 48000)
	if !errors.Is(err, zpk.ErrInvalidRipple) {
		t.Fatalf("err=%v, want ErrInvalidRipple", err)
	}

	_, err = Design(prototype.TypeButterworth, iir.Band(5), 1000, 4, 0, 48000)
	if !errors.Is(err, iir.ErrUnknownBand) {
		t.Fatalf("err=%v, want ErrUnknownBand", err)
	}
}

func TestButterworth_Minus3dBAtCutoff(t *testing.T) {
	sr := 48000.0
	for _, order := range []int{1, 2, 3, 4, 5, 6, 8} {
		for _, sections := range [][]biquad.Coefficients{
			ButterworthLP(1000, order, sr),
			ButterworthHP(1000, order, sr),
		} {
			got := biquad.NewChain(sections).MagnitudeDB(1000, sr)
			if !almostEqual(got, -3.0103, 0.001) {
				t.Fatalf("order %d: cutoff=%.4f dB, want -3.0103", order, got)
			}
		}
	}
}

func TestButterworth_HigherOrderSteeperRolloff(t *testing.T) {
	sr := 48000.0
	prevLP, prevHP := 0.0, 0.0

	for _, order := range []int{1, 2, 4, 6, 8} {
		lp := -biquad.NewChain(ButterworthLP(1000, order, sr)).MagnitudeDB(4000, sr)
		hp := -biquad.NewChain(ButterworthHP(4000, order, sr)).MagnitudeDB(1000, sr)

		if lp <= prevLP || hp <= prevHP {
			t.Fatalf("order %d: attenuation lp=%.2f hp=%.2f not above %.2f/%.2f", order, lp, hp, prevLP, prevHP)
		}

		prevLP, prevHP = lp, hp
	}
}

func TestButterworth_LPHPSymmetry(t *testing.T) {
	sr := 48000.0
	lp := biquad.NewChain(ButterworthLP(2000, 4, sr))
	hp := biquad.NewChain(ButterworthHP(2000, 4, sr))

	// Power complementary: |LP|² + |HP|² = 1.
	for _, f := range []float64{100, 1000, 2000, 5000, 15000} {
		l, h := magChain(lp, f, sr), magChain(hp, f, sr)
		if !almostEqual(l*l+h*h, 1, 1e-9) {
			t.Fatalf("f=%g: |LP|²+|HP|²=%.12f", f, l*l+h*h)
		}
	}
}

func TestButterworth_PassbandMonotonic(t *testing.T) {
	sr := 48000.0
	c := biquad.NewChain(ButterworthLP(1000, 6, sr))

	if span := bandSpan(c, 10, 300, 10, sr); span > 0.01 {
		t.Fatalf("passband span=%.4f dB", span)
	}

	if !monotonic(c, 10, 0.45*sr, 50, sr, true) {
		t.Fatal("lowpass magnitude should fall monotonically")
	}
}

func TestChebyshev1_RippleBand(t *testing.T) {
	sr := 48000.0
	for _, order := range []int{3, 4, 5, 6} {
		lp := biquad.NewChain(Chebyshev1LP(2000, order, 1, sr))

		if got := lp.MagnitudeDB(2000, sr); !almostEqual(got, -1, 1e-6) {
			t.Fatalf("order %d: edge=%.6f dB, want -1", order, got)
		}

		if span := bandSpan(lp, 0, 2000, 5, sr); span > 1+1e-6 {
			t.Fatalf("order %d: passband span %.4f dB exceeds ripple", order, span)
		}

		hp := biquad.NewChain(Chebyshev1HP(2000, order, 1, sr))
		if got := hp.MagnitudeDB(2000, sr); !almostEqual(got, -1, 1e-6) {
			t.Fatalf("order %d: HP edge=%.6f dB, want -1", order, got)
		}
	}
}

func TestChebyshev1_SteeperThanButterworth(t *testing.T) {
	sr := 48000.0
	bw := biquad.NewChain(ButterworthLP(1000, 5, sr)).MagnitudeDB(3000, sr)
	c1 := biquad.NewChain(Chebyshev1LP(1000, 5, 1, sr)).MagnitudeDB(3000, sr)

	if c1 >= bw {
		t.Fatalf("chebyshev1=%.2f dB, butterworth=%.2f dB at 3 kHz", c1, bw)
	}
}

func TestChebyshev2_Stopband(t *testing.T) {
	sr := 48000.0
	for _, order := range []int{3, 4, 5, 8} {
		lp := biquad.NewChain(Chebyshev2LP(2000, order, 50, sr))

		if got := lp.MagnitudeDB(2000, sr); !almostEqual(got, -50, 1e-6) {
			t.Fatalf("order %d: stopband edge=%.6f dB, want -50", order, got)
		}

		for f := 2000.0; f < 0.5*sr; f += 100 {
			if got := lp.MagnitudeDB(f, sr); got > -50+1e-6 {
				t.Fatalf("order %d: %.2f dB at %g Hz above stopband", order, got, f)
			}
		}

		if got := lp.MagnitudeDB(0, sr); !almostEqual(got, 0, 1e-9) {
			t.Fatalf("order %d: DC=%.6f dB", order, got)
		}

		hp := biquad.NewChain(Chebyshev2HP(2000, order, 50, sr))
		if got := hp.MagnitudeDB(2000, sr); !almostEqual(got, -50, 1e-6) {
			t.Fatalf("order %d: HP stopband edge=%.6f dB", order, got)
		}
	}
}

func TestBessel_PhaseAtCutoff(t *testing.T) {
	// Phase normalization puts the analog phase at -n·π/4 at the cutoff;
	// prewarping carries that to the digital cutoff.
	sr := 48000.0
	for order := 1; order <= 8; order++ {
		h := biquad.NewChain(BesselLP(1000, order, sr)).Response(1000, sr)
		want := -float64(order) * math.Pi / 4

		got := cmplx.Phase(h)
		diff := math.Remainder(got-want, 2*math.Pi)

		if math.Abs(diff) > 1e-9 {
			t.Fatalf("order %d: phase=%.6f, want %.6f", order, got, want)
		}
	}
}

func TestBessel_GroupDelayFlat(t *testing.T) {
	sr := 48000.0
	c := biquad.NewChain(BesselLP(2000, 6, sr))

	delay := func(f float64) float64 {
		const df = 1.0
		p0 := cmplx.Phase(c.Response(f-df, sr))
		p1 := cmplx.Phase(c.Response(f+df, sr))

		return -math.Remainder(p1-p0, 2*math.Pi) / (2 * math.Pi * 2 * df)
	}

	d0 := delay(50)
	for _, f := range []float64{200, 400, 600} {
		if d := delay(f); math.Abs(d-d0)/d0 > 0.01 {
			t.Fatalf("group delay at %g Hz = %.3g s, at 50 Hz = %.3g s", f, d, d0)
		}
	}
}

func TestBessel_UnityPassband(t *testing.T) {
	sr := 48000.0
	for order := 1; order <= 10; order++ {
		lp := biquad.NewChain(BesselLP(1000, order, sr))
		hp := biquad.NewChain(BesselHP(1000, order, sr))

		if got := magChain(lp, 0, sr); !almostEqual(got, 1, tol) {
			t.Fatalf("order %d: LP DC=%v", order, got)
		}

		if got := magChain(hp, sr/2, sr); !almostEqual(got, 1, tol) {
			t.Fatalf("order %d: HP Nyquist=%v", order, got)
		}
	}
}
