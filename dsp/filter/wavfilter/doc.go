// Package wavfilter streams PCM WAV audio through per-channel filters.
//
// Samples are decoded with go-audio/wav, scaled to [-1, 1), de-interleaved
// and handed to one [BlockProcessor] per channel. The result is clipped and
// written back at the source bit depth and sample rate.
//
//	err := wavfilter.Process(dst, src, func() wavfilter.BlockProcessor {
//		return cascade.Instance()
//	})
package wavfilter
