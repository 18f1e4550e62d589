// Package pass designs lowpass and highpass section cascades in one call.
//
// Each function returns float64 [biquad.Coefficients] ready for
// [biquad.NewChain], or nil when a parameter is invalid. [Design] returns the
// error instead. Sections come in execution order with the most resonant
// section last.
//
//	chain := biquad.NewChain(pass.ButterworthLP(1000, 4, 48000))
package pass
