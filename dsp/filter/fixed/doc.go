// Package fixed runs second-order section cascades in integer arithmetic.
//
// Coefficients are quantized to a Q-format chosen by the caller. Each
// section keeps its delay state in 64 bits at coefficient precision, so the
// only rounding inside the recursion is on the section output. Products are
// rounded half up and results saturate at the int32 limits.
//
// A typical setup quantizes a float64 design with [sos.Distribute] gain so
// that no single section carries a very small numerator:
//
//	f, _ := fixed.NewFormat(28)
//	c, _ := fixed.NewCascade(f, design.Coefficients())
//	c.ProcessBlock(pcm)
//
// Samples are plain int32 values such as 16- or 24-bit PCM. Full-scale
// 32-bit input with coefficients near the format limit can overflow the
// accumulator.
package fixed
