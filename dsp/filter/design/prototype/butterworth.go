package prototype

import (
	"math/cmplx"

	"github.com/cwbudde/algo-iir/dsp/filter/zpk"
)

// Butterworth returns the order-n Butterworth prototype: poles at
// -exp(i·θ_k), equally spaced on the left half of the unit circle, no zeros
// and unit gain.
//
// Poles are ordered by descending imaginary part; for odd n the real pole
// -1 sits in the middle.
func Butterworth(n int) (zpk.ZPK, error) {
	if err := checkOrder(n); err != nil {
		return zpk.ZPK{}, err
	}

	return zpk.ZPK{
		Zeros: []complex128{},
		Poles: butterworthPoles(n),
		Gain:  1,
	}, nil
}

func butterworthPoles(n int) []complex128 {
	theta := zpk.Theta(n, true)

	poles := make([]complex128, n)
	for i, th := range theta {
		poles[i] = -cmplx.Exp(th)
	}

	return poles
}
