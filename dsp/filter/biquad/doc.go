// Package biquad is the float64 runtime for second-order sections.
//
// A [Section] runs one set of [Coefficients] in Direct Form II Transposed.
// A [Chain] cascades sections with an input gain, which is how the IIR
// designs in dsp/filter/iir execute at float64 precision. Block processing
// dispatches to an unrolled kernel selected once from the host's CPU
// features; every kernel computes the same per-sample recursion.
package biquad
