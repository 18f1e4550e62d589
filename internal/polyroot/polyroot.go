// Package polyroot provides polynomial root finding and conjugate-pair
// utilities shared by the filter design packages.
//
// [Roots] is the general entry point: it builds the companion matrix of a
// real polynomial, takes its eigenvalues and refines each one with Newton
// steps. [DurandKerner] remains available as an iteration-only solver for
// complex coefficients.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// polishIterations bounds the Newton refinement applied to each eigenvalue.
const polishIterations = 8

// Roots returns all complex roots of a real polynomial with coefficients in
// descending power order: c[0]*x^n + c[1]*x^(n-1) + ... + c[n].
//
// The roots are the eigenvalues of the companion matrix, refined with
// [Polish]. A constant polynomial has no roots.
func Roots(c []float64) ([]complex128, error) {
	if len(c) == 0 || c[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrDegeneratePolynomial
		}
	}

	n := len(c) - 1
	switch n {
	case 0:
		return nil, nil
	case 1:
		return []complex128{complex(-c[1]/c[0], 0)}, nil
	}

	data := make([]float64, n*n)
	for j := range n {
		data[j] = -c[j+1] / c[0]
	}

	for i := 1; i < n; i++ {
		data[i*n+i-1] = 1
	}

	coeff := make([]complex128, len(c))
	for i, v := range c {
		coeff[i] = complex(v, 0)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, data), mat.EigenNone); !ok {
		// The QR iteration did not converge; fall back to simultaneous iteration.
		return DurandKerner(coeff)
	}

	roots := eig.Values(nil)

	for i := range roots {
		roots[i] = Polish(coeff, roots[i])
	}

	return roots, nil
}

// Polish refines an approximate root x of the polynomial coeff (descending
// powers) with Newton's method. A step is only accepted while it reduces the
// residual, so a good starting value is never made worse.
func Polish(coeff []complex128, x complex128) complex128 {
	deriv := derivative(coeff)
	best := cmplx.Abs(PolyEval(coeff, x))

	for range polishIterations {
		if best == 0 {
			break
		}

		d := PolyEval(deriv, x)
		if d == 0 {
			break
		}

		next := x - PolyEval(coeff, x)/d

		res := cmplx.Abs(PolyEval(coeff, next))
		if res >= best {
			break
		}

		x, best = next, res
	}

	return x
}

// Canonicalize snaps near-real roots onto the real axis and makes every
// remaining conjugate pair exact. tol is relative, as in [IsConjugate].
func Canonicalize(roots []complex128, tol float64) ([]complex128, error) {
	out := make([]complex128, 0, len(roots))
	rest := make([]complex128, 0, len(roots))

	for _, r := range roots {
		if math.Abs(imag(r)) <= tol*math.Max(1, math.Abs(real(r))) {
			out = append(out, complex(real(r), 0))
			continue
		}

		rest = append(rest, r)
	}

	pairs, err := PairConjugates(rest)
	if err != nil {
		return nil, err
	}

	for _, p := range pairs {
		re := (real(p[0]) + real(p[1])) / 2
		im := (math.Abs(imag(p[0])) + math.Abs(imag(p[1]))) / 2
		out = append(out, complex(re, im), complex(re, -im))
	}

	return out, nil
}

// QuadFromRoots expands a conjugate root pair into monic second-order
// polynomial coefficients. Given roots (a+jb) and (a-jb), it returns the
// coefficients of z^2 - 2a*z + (a^2 + b^2) as (1, -2a, a^2+b^2).
func QuadFromRoots(pair [2]complex128) (float64, float64, float64, error) {
	root1 := pair[0]
	root2 := pair[1]

	if !IsConjugate(root1, root2, ConjugateTol) {
		return 0, 0, 0, ErrDegeneratePolynomial
	}

	a := real(root1)
	b := math.Abs(imag(root1))

	return 1.0, -2 * a, a*a + b*b, nil
}

// PairConjugates groups a slice of complex roots into conjugate pairs. For
// each unused root, it finds the closest match to the expected conjugate and
// validates the pairing within ConjugateTol.
func PairConjugates(roots []complex128) ([][2]complex128, error) {
	used := make([]bool, len(roots))
	pairs := make([][2]complex128, 0, len(roots)/2)

	for i := range roots {
		if used[i] {
			continue
		}

		root := roots[i]
		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j := range roots {
			if i == j || used[j] {
				continue
			}

			d := cmplx.Abs(roots[j] - conj)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], ConjugateTol) {
			return nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true
		pairs = append(pairs, [2]complex128{root, roots[best]})
	}

	return pairs, nil
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = cmplx.Rect(r, angle)
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(norm, r)) >= 1e-6 {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

func derivative(coeff []complex128) []complex128 {
	n := len(coeff) - 1
	if n <= 0 {
		return []complex128{0}
	}

	out := make([]complex128, n)
	for i := range out {
		out[i] = coeff[i] * complex(float64(n-i), 0)
	}

	return out
}
