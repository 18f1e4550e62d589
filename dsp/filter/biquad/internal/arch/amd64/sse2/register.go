//go:build amd64 && !purego

// Package sse2 registers a 2x-unrolled section kernel for SSE2 hosts.
package sse2

import (
	"github.com/cwbudde/algo-iir/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:      "sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,
		Process:   process,
	})
}

func process(c registry.Coefficients, s1, s2 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf)
	i := 0

	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + s1
		t1 := b1*x0 - a1*y0 + s2
		t2 := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + t1
		s1 = b1*x1 - a1*y1 + t2
		s2 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + s1
		s1 = b1*x - a1*y + s2
		s2 = b2*x - a2*y
		buf[i] = y
	}

	return s1, s2
}
