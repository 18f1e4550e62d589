// Package generic registers the portable section kernel.
package generic

import (
	"github.com/cwbudde/algo-iir/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Process:   Process,
	})
}

// Process is the reference per-sample loop every other kernel must match
// bit for bit.
func Process(c registry.Coefficients, s1, s2 float64, buf []float64) (float64, float64) {
	for i, x := range buf {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		buf[i] = y
	}

	return s1, s2
}
