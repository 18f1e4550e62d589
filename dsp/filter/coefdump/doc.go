// Package coefdump reads and writes binary coefficient records.
//
// A record is a 128-byte little-endian header followed by the coefficient
// values:
//
//	offset size field
//	0      4    magic 0x544C4946 ("FILT" in memory)
//	4      2    total record length in bytes, header included
//	6      1    version, always 0
//	7      1    structure: 0 second-order sections, 1 polynomials
//	8      1    value type: 0 float32, 1 float64
//	9      119  name, NUL padded
//
// Section payloads hold b0, b1, b2, a1, a2 per section. Polynomial payloads
// hold all of b followed by all of a, both of the same length. Records may
// be separated by padding; [Parse] resumes at the next "FILT" marker.
package coefdump
