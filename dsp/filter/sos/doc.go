// Package sos splits a digital zero-pole-gain design into a cascade of
// second-order sections.
//
// [FromZPK] repeatedly takes the pole closest to the unit circle, pairs it
// with its conjugate (or the next real pole) and with the nearest zeros, and
// turns each group into one [biquad.Coefficients]. Sections are returned
// in execution order: the section holding the poles farthest from the unit
// circle runs first and the most resonant one runs last, which keeps
// intermediate signal levels low.
package sos
