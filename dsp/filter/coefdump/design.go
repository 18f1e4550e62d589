package coefdump

import (
	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/iir"
)

// ValueTypeOf returns the value type that stores F without loss.
func ValueTypeOf[F iir.Float]() ValueType {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return Float32
	}

	return Float64
}

// AppendSOSDesign appends the sections of d as realized in F.
func AppendSOSDesign[F iir.Float](dst []byte, name string, d *iir.SOSDesign[F]) ([]byte, error) {
	secs := d.Sections()
	coeffs := make([]biquad.Coefficients, len(secs))

	for i, s := range secs {
		coeffs[i] = biquad.Coefficients{
			B0: float64(s.B0), B1: float64(s.B1), B2: float64(s.B2),
			A1: float64(s.A1), A2: float64(s.A2),
		}
	}

	return AppendSOS(dst, name, coeffs, ValueTypeOf[F]())
}

// AppendPolyDesign appends the polynomials of d as realized in F.
func AppendPolyDesign[F iir.Float](dst []byte, name string, d *iir.PolyDesign[F]) ([]byte, error) {
	return AppendPoly(dst, name, widen(d.B()), widen(d.A()), ValueTypeOf[F]())
}

func widen[F iir.Float](v []F) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out
}
