//go:build amd64 && !purego

// Package avx2 registers a 4x-unrolled section kernel for AVX2 hosts.
package avx2

import (
	"github.com/cwbudde/algo-iir/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Process:   process,
	})
}

// process keeps the recursion scalar; the unrolling only shortens the loop
// bookkeeping so the results match the generic kernel exactly.
func process(c registry.Coefficients, s1, s2 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf)
	i := 0

	for ; i+3 < n; i += 4 {
		blk := buf[i : i+4 : i+4]

		y0 := b0*blk[0] + s1
		s1 = b1*blk[0] - a1*y0 + s2
		s2 = b2*blk[0] - a2*y0

		y1 := b0*blk[1] + s1
		s1 = b1*blk[1] - a1*y1 + s2
		s2 = b2*blk[1] - a2*y1

		y2 := b0*blk[2] + s1
		s1 = b1*blk[2] - a1*y2 + s2
		s2 = b2*blk[2] - a2*y2

		y3 := b0*blk[3] + s1
		s1 = b1*blk[3] - a1*y3 + s2
		s2 = b2*blk[3] - a2*y3

		blk[0], blk[1], blk[2], blk[3] = y0, y1, y2, y3
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + s1
		s1 = b1*x - a1*y + s2
		s2 = b2*x - a2*y
		buf[i] = y
	}

	return s1, s2
}
