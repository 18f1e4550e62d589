package zpk

// Poly expands prod(x - roots[k]) into polynomial coefficients in descending
// powers of x. The result has len(roots)+1 entries and a leading 1.
//
// The expansion is a repeated convolution with the degree-one factors
// (1, -roots[k]).
func Poly(roots []complex128) []complex128 {
	out := make([]complex128, 1, len(roots)+1)
	out[0] = 1

	for _, r := range roots {
		out = append(out, 0)
		for i := len(out) - 1; i > 0; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

// RealPoly returns the real part of gain·Poly(roots). Dropping the imaginary
// part is exact only when non-real roots come in conjugate pairs.
func RealPoly(roots []complex128, gain float64) []float64 {
	p := Poly(roots)

	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = gain * real(c)
	}

	return out
}

// Prod returns the product of all entries; an empty product is 1.
func Prod(v []complex128) complex128 {
	p := complex(1, 0)
	for _, x := range v {
		p *= x
	}

	return p
}
