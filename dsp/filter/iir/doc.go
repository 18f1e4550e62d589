// Package iir designs and runs digital IIR filters.
//
// A [Designer] turns an analog prototype (see dsp/filter/design/prototype)
// and a cutoff into a digital [Design] by pre-warping the cutoff, moving the
// prototype to the requested band and applying the bilinear transform. The
// design can then be realized in two forms:
//
//   - [PolyDesign]: one transposed direct-form II recursion over the full
//     numerator and denominator polynomials.
//   - [SOSDesign]: a cascade of second-order sections, which is the
//     numerically safer choice for orders above about four.
//
// Both are generic over the sample type ([Float]) and are read-only after
// construction, so one design can feed any number of filter instances
// created with Instance. An instance holds only its delay state; it is not
// safe for concurrent use.
//
//	d, err := iir.New(48000)
//	design, err := d.Lowpass(prototype.Prototype{Type: prototype.TypeButterworth, Order: 4}, 1000)
//	sections, err := iir.NewSOS[float32](design, sos.FirstSection)
//	f := sections.Instance()
//	y := f.Process(x)
package iir
