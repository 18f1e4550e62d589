// Package zpk provides the zero-pole-gain representation of a transfer
// function and the transforms used to turn a normalized analog prototype into
// a digital filter.
//
// A [ZPK] produced by a prototype generator (see dsp/filter/design/prototype)
// is denormalized with [Lowpass] or [Highpass] and then mapped into the z-plane
// with [Bilinear]. The result is consumed by dsp/filter/sos (cascade of
// second-order sections) or expanded with [Poly] into direct-form coefficients.
//
// All functions are pure: they never modify their input and always return
// freshly allocated root slices.
package zpk
