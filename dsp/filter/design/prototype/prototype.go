package prototype

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// ErrUnknownType is returned by [ParseType] for an unrecognized family name.
var ErrUnknownType = errors.New("prototype: unknown filter type")

// Type selects an analog prototype family.
type Type int

const (
	// TypeButterworth is the maximally flat magnitude family.
	TypeButterworth Type = iota
	// TypeChebyshev1 has ripple in the passband.
	TypeChebyshev1
	// TypeChebyshev2 has ripple in the stopband.
	TypeChebyshev2
	// TypeBessel is the maximally flat group delay family.
	TypeBessel
)

// String returns the canonical lower-case family name.
func (t Type) String() string {
	switch t {
	case TypeButterworth:
		return "butterworth"
	case TypeChebyshev1:
		return "chebyshev1"
	case TypeChebyshev2:
		return "chebyshev2"
	case TypeBessel:
		return "bessel"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// HasRipple reports whether the family takes a ripple parameter.
func (t Type) HasRipple() bool {
	return t == TypeChebyshev1 || t == TypeChebyshev2
}

// ParseType converts a family name into a [Type]. Both the long names and
// the short scipy-style names ("butter", "cheby1", "cheby2") are accepted.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "butterworth", "butter":
		return TypeButterworth, nil
	case "chebyshev1", "cheby1":
		return TypeChebyshev1, nil
	case "chebyshev2", "cheby2":
		return TypeChebyshev2, nil
	case "bessel":
		return TypeBessel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Prototype describes an analog prototype request. RippleDB is only used by
// the Chebyshev families.
type Prototype struct {
	Type     Type
	Order    int
	RippleDB float64
}

// ZPK builds the normalized analog prototype.
func (p Prototype) ZPK() (zpk.ZPK, error) {
	return Build(p.Type, p.Order, p.RippleDB)
}

// String returns a short description such as "chebyshev1(4, 1 dB)".
func (p Prototype) String() string {
	if p.Type.HasRipple() {
		return fmt.Sprintf("%s(%d, %g dB)", p.Type, p.Order, p.RippleDB)
	}

	return fmt.Sprintf("%s(%d)", p.Type, p.Order)
}

// Build returns the normalized analog prototype of the given family and
// order. rippleDB is ignored for Butterworth and Bessel.
func Build(t Type, order int, rippleDB float64) (zpk.ZPK, error) {
	switch t {
	case TypeButterworth:
		return Butterworth(order)
	case TypeChebyshev1:
		return Chebyshev1(order, rippleDB)
	case TypeChebyshev2:
		return Chebyshev2(order, rippleDB)
	case TypeBessel:
		return Bessel(order)
	default:
		return zpk.ZPK{}, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
}

func checkOrder(order int) error {
	if order <= 0 {
		return fmt.Errorf("prototype: order %d: %w", order, zpk.ErrInvalidOrder)
	}

	return nil
}

func checkRipple(rippleDB float64) error {
	if !(rippleDB > 0) || math.IsInf(rippleDB, 0) {
		return fmt.Errorf("prototype: ripple %g dB: %w", rippleDB, zpk.ErrInvalidRipple)
	}

	return nil
}

// minusSinh returns -sinh(v) written out with exponentials so that a real
// argument yields an exactly real result.
func minusSinh(v complex128) complex128 {
	return -(cmplx.Exp(v) - cmplx.Exp(-v)) / 2
}
