package sos

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
	"github.com/cwbudde/algo-iir/internal/polyroot"
)

// GainMode selects how the overall gain is spread over the sections.
type GainMode int

const (
	// FirstSection puts the whole gain on the first section that runs.
	FirstSection GainMode = iota
	// Distribute gives every section the m-th root of |gain|; a negative
	// gain puts its sign on the first section.
	Distribute
)

// String returns the mode name.
func (m GainMode) String() string {
	switch m {
	case FirstSection:
		return "first-section"
	case Distribute:
		return "distribute"
	default:
		return fmt.Sprintf("GainMode(%d)", int(m))
	}
}

// Count returns the number of sections an order-n design needs.
func Count(order int) int {
	return (order + 1) / 2
}

// Build turns two zeros, two poles and a gain into one section:
// b = gain·(z - zeros[0])(z - zeros[1]), a = (z - poles[0])(z - poles[1]).
// Conjugate pairs expand to exactly real quadratics; imaginary parts left
// over from any other pair are dropped.
func Build(zeros, poles [2]complex128, gain float64) (biquad.Coefficients, error) {
	b := quadratic(zeros)
	for i := range b {
		b[i] *= gain
	}

	c, err := biquad.FromPolynomials(b, quadratic(poles))
	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("sos: %w", err)
	}

	return c, nil
}

func quadratic(roots [2]complex128) []float64 {
	if c0, c1, c2, err := polyroot.QuadFromRoots(roots); err == nil {
		return []float64{c0, c1, c2}
	}

	return zpk.RealPoly(roots[:], 1)
}

// FromZPK decomposes a digital ZPK into Count(z.Order()) sections.
//
// Missing zeros are added at the origin, and odd counts get one more origin
// root, before pairing. Pairing is deterministic: among equally good
// candidates the one found first in the working set wins.
func FromZPK(z zpk.ZPK, mode GainMode) ([]biquad.Coefficients, error) {
	if err := z.Validate(); err != nil {
		return nil, fmt.Errorf("sos: %w", err)
	}

	zeros := make([]complex128, len(z.Poles))
	copy(zeros, z.Zeros)

	even := zpk.ZPK{Zeros: zeros, Poles: z.Poles, Gain: z.Gain}.Even()

	groups := pairRoots(even.Zeros, even.Poles)
	gains := sectionGains(z.Gain, len(groups), mode)

	out := make([]biquad.Coefficients, len(groups))
	for i, g := range groups {
		c, err := Build(g.zeros, g.poles, gains[i])
		if err != nil {
			return nil, err
		}

		out[i] = c
	}

	return out, nil
}

func sectionGains(k float64, m int, mode GainMode) []float64 {
	gains := make([]float64, m)
	if m == 0 {
		return gains
	}

	if mode == Distribute {
		g := math.Pow(math.Abs(k), 1/float64(m))
		for i := range gains {
			gains[i] = g
		}

		if k < 0 {
			gains[0] = -g
		}

		return gains
	}

	for i := range gains {
		gains[i] = 1
	}

	gains[0] = k

	return gains
}

type group struct {
	zeros [2]complex128
	poles [2]complex128
}

// pairRoots consumes equally sized, even-length zero and pole sets and
// returns the groups in execution order.
func pairRoots(zeros, poles []complex128) []group {
	z := slices.Clone(zeros)
	p := slices.Clone(poles)

	var picked []group

	for len(p) > 0 {
		var g group

		i := argmin(p, byUnitDistance)
		p1 := p[i]
		p = swapPop(p, i)

		if !zpk.IsReal(p1) && zpk.CountReal(z) == 1 && zpk.CountReal(p) == 1 {
			// The lone real zero must stay with the lone real pole, so this
			// complex pole takes a complex zero pair.
			i = argmin(z, complexFirst(nearTo(p1)))
			z1 := z[i]
			z = swapPop(z, i)

			i = argmin(z, nearTo(cmplx.Conj(z1)))
			z2 := z[i]
			z = swapPop(z, i)

			i = argmin(p, nearTo(cmplx.Conj(p1)))
			p2 := p[i]
			p = swapPop(p, i)

			g = group{zeros: [2]complex128{z1, z2}, poles: [2]complex128{p1, p2}}
		} else {
			if zpk.IsReal(p1) {
				i = argmin(p, realFirst(byUnitDistance))
			} else {
				i = argmin(p, nearTo(cmplx.Conj(p1)))
			}

			p2 := p[i]
			p = swapPop(p, i)

			i = argmin(z, nearTo(p1))
			z1 := z[i]
			z = swapPop(z, i)

			if zpk.IsReal(z1) {
				i = argmin(z, realFirst(nearTo(p1)))
			} else {
				i = argmin(z, nearTo(cmplx.Conj(z1)))
			}

			z2 := z[i]
			z = swapPop(z, i)

			g = group{zeros: [2]complex128{z1, z2}, poles: [2]complex128{p1, p2}}
		}

		picked = append(picked, g)
	}

	slices.Reverse(picked)

	return picked
}

// swapPop removes v[i] by moving v[0] into its slot and dropping the head.
func swapPop(v []complex128, i int) []complex128 {
	v[i] = v[0]
	return v[1:]
}

type less func(a, b complex128) bool

// argmin returns the index of the first strict minimum under lt.
func argmin(v []complex128, lt less) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if lt(v[i], v[best]) {
			best = i
		}
	}

	return best
}

func byUnitDistance(a, b complex128) bool {
	return zpk.UnitDistance(a) < zpk.UnitDistance(b)
}

func nearTo(target complex128) less {
	return func(a, b complex128) bool {
		return zpk.Norm(a-target) < zpk.Norm(b-target)
	}
}

func realFirst(lt less) less {
	return func(a, b complex128) bool {
		ra, rb := zpk.IsReal(a), zpk.IsReal(b)
		if ra != rb {
			return ra
		}

		return lt(a, b)
	}
}

func complexFirst(lt less) less {
	return func(a, b complex128) bool {
		ra, rb := zpk.IsReal(a), zpk.IsReal(b)
		if ra != rb {
			return rb
		}

		return lt(a, b)
	}
}
