package wavfilter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

const (
	// DefaultBlockSize is the number of frames read per block.
	DefaultBlockSize = 4096

	pcmFormat = 1
)

var (
	// ErrInvalidWAV is returned when the source is not a readable PCM WAV.
	ErrInvalidWAV = errors.New("wavfilter: invalid wav")
	// ErrNilFactory is returned when no processor factory is given.
	ErrNilFactory = errors.New("wavfilter: nil processor factory")
)

// BlockProcessor filters a block of samples in place and keeps its state
// between calls.
type BlockProcessor interface {
	ProcessBlock(buf []float64)
}

// Info describes the processed stream.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int64
	Clipped    int64
}

type config struct {
	blockSize int
	logger    *slog.Logger
}

// Option configures Process.
type Option func(*config)

// WithBlockSize sets the number of frames per block. Values below 1 keep
// the default.
func WithBlockSize(frames int) Option {
	return func(c *config) {
		if frames > 0 {
			c.blockSize = frames
		}
	}
}

// WithLogger sets the logger for format and progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Process reads src, filters every channel with its own processor from
// factory and writes a WAV with the same format to dst.
func Process(dst io.WriteSeeker, src io.ReadSeeker, factory func() BlockProcessor, opts ...Option) (Info, error) {
	if factory == nil {
		return Info{}, ErrNilFactory
	}

	cfg := config{
		blockSize: DefaultBlockSize,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(&cfg)
	}

	dec := wav.NewDecoder(src)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("%w: not a wav stream", ErrInvalidWAV)
	}

	if dec.WavAudioFormat != pcmFormat {
		return Info{}, fmt.Errorf("%w: audio format %d is not PCM", ErrInvalidWAV, dec.WavAudioFormat)
	}

	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}

	full, err := fullScale(info.BitDepth)
	if err != nil {
		return info, err
	}

	cfg.logger.Debug("wavfilter: input",
		"sample_rate", info.SampleRate,
		"channels", info.Channels,
		"bit_depth", info.BitDepth)

	procs := make([]BlockProcessor, info.Channels)
	for ch := range procs {
		procs[ch] = factory()
	}

	format := &audio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate}
	enc := wav.NewEncoder(dst, info.SampleRate, info.BitDepth, info.Channels, pcmFormat)

	s := newStream(info.Channels, cfg.blockSize, info.BitDepth, full)
	in := &audio.IntBuffer{Data: make([]int, cfg.blockSize*info.Channels), Format: format}
	out := &audio.IntBuffer{Format: format, SourceBitDepth: info.BitDepth}

	for {
		n, err := dec.PCMBuffer(in)
		if err != nil && !errors.Is(err, io.EOF) {
			return info, fmt.Errorf("wavfilter: read pcm: %w", err)
		}

		if n == 0 {
			break
		}

		out.Data = s.run(in.Data[:n], procs)
		if len(out.Data) == 0 {
			continue
		}

		if err := enc.Write(out); err != nil {
			return info, fmt.Errorf("wavfilter: write pcm: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return info, fmt.Errorf("wavfilter: close: %w", err)
	}

	info.Frames = s.frames
	info.Clipped = s.clipped

	if s.clipped > 0 {
		cfg.logger.Warn("wavfilter: output clipped", "samples", s.clipped)
	}

	cfg.logger.Debug("wavfilter: done", "frames", info.Frames)

	return info, nil
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, bitDepth)
	}
}

// stream de-interleaves decoded samples and carries incomplete frames over
// to the next block.
type stream struct {
	channels int
	offset   int
	full     float64

	pending []int
	chans   [][]float64
	out     []int

	frames  int64
	clipped int64
}

func newStream(channels, blockSize, bitDepth int, full float64) *stream {
	s := &stream{
		channels: channels,
		full:     full,
		chans:    make([][]float64, channels),
		out:      make([]int, 0, blockSize*channels),
	}

	// 8-bit WAV samples are unsigned.
	if bitDepth == 8 {
		s.offset = 128
	}

	for ch := range s.chans {
		s.chans[ch] = make([]float64, blockSize)
	}

	return s
}

func (s *stream) run(data []int, procs []BlockProcessor) []int {
	s.pending = append(s.pending, data...)

	frames := len(s.pending) / s.channels
	if frames == 0 {
		return nil
	}

	for ch := range s.chans {
		if cap(s.chans[ch]) < frames {
			s.chans[ch] = make([]float64, frames)
		}

		buf := s.chans[ch][:frames]
		for i := range buf {
			buf[i] = float64(s.pending[i*s.channels+ch] - s.offset)
		}

		f64.Scale(buf, buf, 1/s.full)
		procs[ch].ProcessBlock(buf)
		f64.Scale(buf, buf, s.full)
	}

	s.out = s.out[:0]
	for i := range frames {
		for ch := range s.chans {
			s.out = append(s.out, s.quantize(s.chans[ch][i]))
		}
	}

	rest := copy(s.pending, s.pending[frames*s.channels:])
	s.pending = s.pending[:rest]
	s.frames += int64(frames)

	return s.out
}

func (s *stream) quantize(v float64) int {
	q := math.Round(v)

	switch {
	case q > s.full-1:
		q = s.full - 1
		s.clipped++
	case q < -s.full:
		q = -s.full
		s.clipped++
	case math.IsNaN(q):
		q = 0
		s.clipped++
	}

	return int(q) + s.offset
}
