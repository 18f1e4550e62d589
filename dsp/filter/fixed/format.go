package fixed

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidFormat is returned for a fraction bit count outside 1..30.
	ErrInvalidFormat = errors.New("fixed: invalid format")
	// ErrCoefficientRange is returned when a coefficient does not fit the
	// chosen format.
	ErrCoefficientRange = errors.New("fixed: coefficient out of range")
)

// MinFracBits and MaxFracBits bound the fraction bits of a Format.
const (
	MinFracBits = 1
	MaxFracBits = 30
)

// Format is a signed 32-bit Q-format with a fixed number of fraction bits.
type Format struct {
	frac uint
}

// NewFormat returns the Q(fracBits) format.
func NewFormat(fracBits int) (Format, error) {
	if fracBits < MinFracBits || fracBits > MaxFracBits {
		return Format{}, fmt.Errorf("%w: %d fraction bits", ErrInvalidFormat, fracBits)
	}

	return Format{frac: uint(fracBits)}, nil
}

// FracBits returns the number of fraction bits.
func (f Format) FracBits() int { return int(f.frac) }

// One returns the representation of 1.0.
func (f Format) One() int64 { return 1 << f.frac }

// Max returns the largest representable value.
func (f Format) Max() float64 {
	return float64(math.MaxInt32) / float64(f.One())
}

// Min returns the smallest representable value.
func (f Format) Min() float64 {
	return float64(math.MinInt32) / float64(f.One())
}

// String returns the format as "Qn".
func (f Format) String() string {
	return fmt.Sprintf("Q%d", f.frac)
}

// FromFloat quantizes v, rounding half up and saturating at the int32
// limits. NaN maps to zero.
func (f Format) FromFloat(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}

	return sat32f(math.Floor(v*float64(f.One()) + 0.5))
}

// ToFloat returns the value q represents.
func (f Format) ToFloat(q int32) float64 {
	return float64(q) / float64(f.One())
}

// Mul multiplies two values in this format, rounding half up and
// saturating.
func (f Format) Mul(a, b int32) int32 {
	return sat32(f.round(int64(a) * int64(b)))
}

// fits reports whether v can be quantized without saturating.
func (f Format) fits(v float64) bool {
	q := math.Floor(v*float64(f.One()) + 0.5)
	return q >= math.MinInt32 && q <= math.MaxInt32
}

// round shifts a product at double precision back to this format.
// round divides p by 2^frac, rounding half up. It never adds to p, so a
// saturated accumulator cannot wrap.
func (f Format) round(p int64) int64 {
	q := p >> (f.frac - 1)
	return q>>1 + q&1
}

// addSat returns a+b clamped to the int64 range.
func addSat(a, b int64) int64 {
	s := a + b
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt64
		}

		return math.MinInt64
	}

	return s
}

func sat32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

func sat32f(v float64) int32 {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}
